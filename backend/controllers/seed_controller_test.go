package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signlearn/backend/seed"
)

func TestSeedPopulateOnce(t *testing.T) {
	env := newTestEnv(t)
	token := env.admin()

	resp, body := env.request(http.MethodPost, "/api/seed/populate", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var first seed.Result
	decode(t, body.Data, &first)
	assert.True(t, first.Seeded)
	assert.Equal(t, 5, first.Courses)

	resp, body = env.request(http.MethodPost, "/api/seed/populate", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Database already has courses. Skipping seed.", body.Message)

	resp, body = env.request(http.MethodGet, "/api/seed/status", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var st seed.Status
	decode(t, body.Data, &st)
	assert.Equal(t, int64(5), st.Courses)
	assert.Equal(t, int64(5), st.Lessons)
	assert.Equal(t, int64(9), st.QuizQuestions)
}

func TestSeedPopulateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup("Ann", "ann@example.com", "secret1")

	resp, _ := env.request(http.MethodPost, "/api/seed/populate", nil, token)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
