package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"church-api/internal/auth"
	"church-api/internal/handlers"
	"church-api/internal/models"
	"church-api/internal/store"
	"church-api/internal/ws"
)

type testEnv struct {
	router *gin.Engine
	store  *store.Memory
	tokens *auth.TokenIssuer
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	tokens := &auth.TokenIssuer{Secret: []byte("test-secret"), TTL: time.Hour}
	hub := ws.NewHub()
	go hub.Run()

	r := gin.New()
	handlers.Register(r, st, tokens, hub)
	return &testEnv{router: r, store: st, tokens: tokens}
}

// do performs a JSON request; token may be empty for anonymous calls.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// registerMember registers through the API and returns a login token
// plus the stored user.
func (e *testEnv) registerMember(t *testing.T, name, email string) (string, *models.User) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password-123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": email, "password": "password-123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.Token)

	user, err := e.store.GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return resp.Token, user
}

// registerAdmin registers a member and promotes it directly in the
// store, the way an operator would out of band.
func (e *testEnv) registerAdmin(t *testing.T, email string) (string, *models.User) {
	t.Helper()

	token, user := e.registerMember(t, "Admin", email)
	user.Role = models.RoleAdmin
	require.NoError(t, e.store.UpdateUser(context.Background(), user))
	return token, user
}
