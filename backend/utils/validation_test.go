package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"omitempty,min=0,max=150"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(signup{Name: "Ann", Email: "ann@example.com"}))

	err := ValidateStruct(signup{Name: "Ann", Email: "nope"})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid email format", appErr.Message)

	age := 200
	err = ValidateStruct(signup{Age: &age})
	require.ErrorAs(t, err, &appErr)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "must be at most 150", details["age"])
}
