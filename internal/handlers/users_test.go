package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeReturnsOwnRow(t *testing.T) {
	env := newEnv(t)
	token, user := env.registerMember(t, "Ana", "ana@example.com")

	rec := env.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, user.ID, body["id"])
	assert.Equal(t, "ana@example.com", body["email"])
	assert.NotContains(t, body, "password_hash")
}

func TestUpdateMeChangesNameAndEmailOnly(t *testing.T) {
	env := newEnv(t)
	token, user := env.registerMember(t, "Ana", "ana@example.com")

	rec := env.do(t, http.MethodPut, "/api/users/me", token, gin.H{
		"name": "Ana Maria", "email": "ana.maria@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := env.store.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "ana.maria@example.com", updated.Email)
	// role and password survive untouched
	assert.Equal(t, user.Role, updated.Role)
	assert.Equal(t, user.PasswordHash, updated.PasswordHash)
}

func TestUpdateMeDuplicateEmail(t *testing.T) {
	env := newEnv(t)
	env.registerMember(t, "Bea", "bea@example.com")
	token, _ := env.registerMember(t, "Ana", "ana@example.com")

	rec := env.do(t, http.MethodPut, "/api/users/me", token, gin.H{
		"name": "Ana", "email": "bea@example.com",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListUsersAdminOnly(t *testing.T) {
	env := newEnv(t)
	memberToken, _ := env.registerMember(t, "Ana", "ana@example.com")
	adminToken, _ := env.registerAdmin(t, "admin@example.com")

	rec := env.do(t, http.MethodGet, "/api/users", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]interface{}
	decode(t, rec, &users)
	assert.Len(t, users, 2)
}
