package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createChild(t *testing.T, env *testEnv, token, name string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/children", token, gin.H{
		"name": name, "birthdate": "2015-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]interface{}
	decode(t, rec, &body)
	return body["id"].(string)
}

func TestCreateChildBindsOwnerToPrincipal(t *testing.T) {
	env := newEnv(t)
	token, user := env.registerMember(t, "Ana", "ana@example.com")

	// a supplied owner id must be ignored
	rec := env.do(t, http.MethodPost, "/api/children", token, gin.H{
		"name": "Ana Jr", "birthdate": "2015-03-01", "user_id": "someone-else",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, user.ID, body["user_id"])
}

func TestCreateChildRejectsBadBirthdate(t *testing.T) {
	env := newEnv(t)
	token, _ := env.registerMember(t, "Ana", "ana@example.com")

	rec := env.do(t, http.MethodPost, "/api/children", token, gin.H{
		"name": "Ana Jr", "birthdate": "01/03/2015",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChildOwnershipDisguisedAsNotFound(t *testing.T) {
	env := newEnv(t)
	ownerToken, _ := env.registerMember(t, "Ana", "ana@example.com")
	otherToken, _ := env.registerMember(t, "Bea", "bea@example.com")

	childID := createChild(t, env, ownerToken, "Ana Jr")

	// a foreign child and a missing child answer identically
	foreign := env.do(t, http.MethodGet, "/api/children/"+childID, otherToken, nil)
	missing := env.do(t, http.MethodGet, "/api/children/does-not-exist", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, foreign.Body.String(), missing.Body.String())

	rec := env.do(t, http.MethodPut, "/api/children/"+childID, otherToken, gin.H{
		"name": "Hacked", "birthdate": "2015-03-01",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/children/"+childID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the owner still sees the original row
	rec = env.do(t, http.MethodGet, "/api/children/"+childID, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decode(t, rec, &body)
	assert.Equal(t, "Ana Jr", body["name"])
}

func TestAdminCanManageAnyChild(t *testing.T) {
	env := newEnv(t)
	ownerToken, _ := env.registerMember(t, "Ana", "ana@example.com")
	adminToken, _ := env.registerAdmin(t, "admin@example.com")

	childID := createChild(t, env, ownerToken, "Ana Jr")

	rec := env.do(t, http.MethodGet, "/api/children/"+childID, adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/children/"+childID, adminToken, gin.H{
		"name": "Renamed", "birthdate": "2015-03-01",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/children/"+childID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListMineOnlyOwnChildren(t *testing.T) {
	env := newEnv(t)
	anaToken, _ := env.registerMember(t, "Ana", "ana@example.com")
	beaToken, _ := env.registerMember(t, "Bea", "bea@example.com")

	createChild(t, env, anaToken, "Ana Jr")
	createChild(t, env, beaToken, "Bea Jr")

	rec := env.do(t, http.MethodGet, "/api/children/me", anaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var children []map[string]interface{}
	decode(t, rec, &children)
	require.Len(t, children, 1)
	assert.Equal(t, "Ana Jr", children[0]["name"])
}
