package handler_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/bloglist/internal/handler"
)

func newUserHandler(t *testing.T, env *testEnv) *handler.UserHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return handler.NewUserHandler(env.users, logger)
}

func TestHandleRegister(t *testing.T) {
	t.Run("valid registration", func(t *testing.T) {
		env := newTestEnv(t)
		h := newUserHandler(t, env)

		req := httptest.NewRequest(http.MethodPost, "/api/users",
			bytes.NewBufferString(`{"username":"mluukkai","name":"Matti Luukkainen","password":"salainen"}`))
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())

		var raw map[string]any
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
		assert.Equal(t, "mluukkai", raw["username"])
		assert.NotEmpty(t, raw["id"])
		// The hash must never appear in a response under any name.
		assert.NotContains(t, raw, "passwordHash")
		assert.NotContains(t, raw, "password_hash")
		assert.NotContains(t, raw, "password")
	})

	t.Run("short username gets 400", func(t *testing.T) {
		env := newTestEnv(t)
		h := newUserHandler(t, env)

		req := httptest.NewRequest(http.MethodPost, "/api/users",
			bytes.NewBufferString(`{"username":"ab","password":"salainen"}`))
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate username gets 400", func(t *testing.T) {
		env := newTestEnv(t)
		h := newUserHandler(t, env)
		env.registerUser(t, "root")

		req := httptest.NewRequest(http.MethodPost, "/api/users",
			bytes.NewBufferString(`{"username":"root","password":"other"}`))
		rr := httptest.NewRecorder()

		h.HandleRegister(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandleUserList(t *testing.T) {
	env := newTestEnv(t)
	h := newUserHandler(t, env)

	alice := env.registerUser(t, "alice")
	env.registerUser(t, "bob")
	created := env.createBlog(t, alice, `{"title":"t","url":"u"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rr := httptest.NewRecorder()

	h.HandleList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var raw []map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	require.Len(t, raw, 2)

	// alice registered first and owns one blog.
	assert.Equal(t, "alice", raw[0]["username"])
	blogs, ok := raw[0]["blogs"].([]any)
	require.True(t, ok, "user should carry a blogs array")
	require.Len(t, blogs, 1)
	assert.Equal(t, created.ID, blogs[0])

	for _, u := range raw {
		assert.NotContains(t, u, "passwordHash")
	}
}
