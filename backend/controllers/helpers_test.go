package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"signlearn/backend/config"
	"signlearn/backend/database"
	"signlearn/backend/routes"
	"signlearn/backend/session"
	"signlearn/backend/utils"
)

const adminEmail = "admin@example.com"

type testEnv struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

// envelope is the JSON shape of every reply.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]int  `json:"meta"`
	Details json.RawMessage `json:"details"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenMemory(uuid.NewString())
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:            "test",
		ServerPort:        "8080",
		DBDriver:          "sqlite",
		JWTSecret:         "testsecret",
		BcryptCost:        bcrypt.MinCost,
		SessionCookieName: "signlearn_sid",
		SessionTTL:        time.Hour,
		AdminEmails:       []string{adminEmail},
		CORSOrigins:       "http://localhost:3000",
		RequestTimeout:    5 * time.Second,
	}
	log := utils.NopLogger()
	app := routes.NewApp(db, cfg, session.NewManager(cfg, nil), log)
	return &testEnv{t: t, app: app, db: db, cfg: cfg}
}

// request sends body as JSON, authenticating with token when it is not empty.
func (e *testEnv) request(method, path string, body interface{}, token string) (*http.Response, envelope) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(e.t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.send(req)
}

func (e *testEnv) send(req *http.Request) (*http.Response, envelope) {
	e.t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	require.NoError(e.t, resp.Body.Close())
	if len(raw) > 0 {
		require.NoError(e.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

// signup registers a user and returns its bearer token.
func (e *testEnv) signup(name, email, password string) string {
	e.t.Helper()
	resp, env := e.request(http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"name": name, "email": email, "password": password,
	}, "")
	require.Equal(e.t, fiber.StatusCreated, resp.StatusCode, env.Message)

	var data struct {
		Token string `json:"token"`
	}
	decode(e.t, env.Data, &data)
	require.NotEmpty(e.t, data.Token)
	return data.Token
}

func (e *testEnv) admin() string {
	return e.signup("Admin", adminEmail, "adminpass")
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), string(raw))
}
