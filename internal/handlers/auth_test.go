package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesActiveMember(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana Silva", "email": "ana@example.com", "password": "password-123",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "member", body["role"])
	assert.Equal(t, true, body["is_active"])
	assert.NotEmpty(t, body["id"])

	// no password material in any shape
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newEnv(t)
	env.registerMember(t, "Ana", "ana@example.com")

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Impostor", "email": "ana@example.com", "password": "password-456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// email comparison is case-insensitive
	rec = env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Impostor", "email": "ANA@Example.com", "password": "password-456",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongCredentialsIndistinguishable(t *testing.T) {
	env := newEnv(t)
	env.registerMember(t, "Ana", "ana@example.com")

	wrongPassword := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "wrong-password",
	})
	noSuchEmail := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, noSuchEmail.Code)
	// identical bodies: no account enumeration
	assert.Equal(t, wrongPassword.Body.String(), noSuchEmail.Body.String())
}

func TestLoginTokenReflectsStoredRole(t *testing.T) {
	env := newEnv(t)
	token, _ := env.registerMember(t, "Ana", "ana@example.com")

	claims, err := env.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "member", string(claims.Role))
}

func TestGuardedRouteRejectsAnonymous(t *testing.T) {
	env := newEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPrincipalReflectsCurrentStoreState(t *testing.T) {
	env := newEnv(t)
	token, user := env.registerMember(t, "Ana", "ana@example.com")

	// deactivate after the token was issued; the guard must read the
	// store, not the token snapshot
	user.IsActive = false
	require.NoError(t, env.store.UpdateUser(context.Background(), user))

	rec := env.do(t, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
