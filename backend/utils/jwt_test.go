package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWTToken(42, "user@example.com", "user", "secret")
	require.NoError(t, err)

	claims, err := ParseJWTToken("Bearer "+token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseJWTTokenRejects(t *testing.T) {
	token, err := GenerateJWTToken(1, "a@example.com", "user", "secret")
	require.NoError(t, err)

	cases := map[string]string{
		"wrong secret": token,
		"empty":        "Bearer ",
		"garbage":      "not.a.token",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWTToken(tok, "other")
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 401, appErr.Status)
		})
	}
}
