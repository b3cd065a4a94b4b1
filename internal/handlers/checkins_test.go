package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinRequiresExistingRefs(t *testing.T) {
	env := newEnv(t)
	token, _ := env.registerMember(t, "Ana", "ana@example.com")
	adminToken, _ := env.registerAdmin(t, "admin@example.com")

	childID := createChild(t, env, token, "Ana Jr")
	eventID := createEvent(t, env, adminToken, "Sunday School", "2025-06-01T10:00:00Z", "class")

	rec := env.do(t, http.MethodPost, "/api/checkins", token, gin.H{
		"child_id": "missing", "event_id": eventID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/checkins", token, gin.H{
		"child_id": childID, "event_id": "missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// nothing was written by the failed attempts
	rec = env.do(t, http.MethodGet, "/api/checkins/event/"+eventID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var checkins []map[string]interface{}
	decode(t, rec, &checkins)
	assert.Empty(t, checkins)
}

func TestCheckinOwnershipOfChild(t *testing.T) {
	env := newEnv(t)
	anaToken, _ := env.registerMember(t, "Ana", "ana@example.com")
	beaToken, _ := env.registerMember(t, "Bea", "bea@example.com")
	adminToken, _ := env.registerAdmin(t, "admin@example.com")

	childID := createChild(t, env, anaToken, "Ana Jr")
	eventID := createEvent(t, env, adminToken, "Sunday School", "2025-06-01T10:00:00Z", "class")

	// another member cannot check in a child they do not own, and the
	// refusal is shaped like not-found
	rec := env.do(t, http.MethodPost, "/api/checkins", beaToken, gin.H{
		"child_id": childID, "event_id": eventID,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// an admin can check in anyone's child
	rec = env.do(t, http.MethodPost, "/api/checkins", adminToken, gin.H{
		"child_id": childID, "event_id": eventID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRepeatCheckinsAllowed(t *testing.T) {
	env := newEnv(t)
	token, _ := env.registerMember(t, "Ana", "ana@example.com")
	adminToken, _ := env.registerAdmin(t, "admin@example.com")

	childID := createChild(t, env, token, "Ana Jr")
	eventID := createEvent(t, env, adminToken, "Sunday School", "2025-06-01T10:00:00Z", "class")

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/api/checkins", token, gin.H{
			"child_id": childID, "event_id": eventID,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/checkins/event/"+eventID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var checkins []map[string]interface{}
	decode(t, rec, &checkins)
	assert.Len(t, checkins, 2)
}

// Full scenario: member A checks Ana in to Sunday School, member B is
// told the child does not exist, the admin sees the one check-in.
func TestCheckinScenario(t *testing.T) {
	env := newEnv(t)
	aToken, _ := env.registerMember(t, "Member A", "a@example.com")
	bToken, _ := env.registerMember(t, "Member B", "b@example.com")
	adminToken, _ := env.registerAdmin(t, "admin@example.com")

	childID := createChild(t, env, aToken, "Ana")
	eventID := createEvent(t, env, adminToken, "Sunday School", "2025-06-01T10:00:00Z", "class")

	rec := env.do(t, http.MethodPost, "/api/checkins", aToken, gin.H{
		"child_id": childID, "event_id": eventID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]interface{}
	decode(t, rec, &created)
	assert.NotEmpty(t, created["timestamp"])

	// member B probing Ana's check-ins gets not-found
	rec = env.do(t, http.MethodGet, "/api/checkins/child/"+childID, bToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// the owner lists them fine
	rec = env.do(t, http.MethodGet, "/api/checkins/child/"+childID, aToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var checkins []map[string]interface{}
	decode(t, rec, &checkins)
	assert.Len(t, checkins, 1)

	// by-event listing is admin territory
	rec = env.do(t, http.MethodGet, "/api/checkins/event/"+eventID, aToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/checkins/event/"+eventID, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &checkins)
	require.Len(t, checkins, 1)
	assert.Equal(t, childID, checkins[0]["child_id"])
}
