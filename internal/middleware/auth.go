package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"church-api/internal/auth"
	"church-api/internal/models"
	"church-api/internal/store"
)

const principalKey = "principal"

// RequireAuth verifies the Bearer token and loads the subject's current
// row from the store. Role and active flag always come from the store,
// never from the token, so a demoted or deactivated account loses
// access immediately. Any failure is a 401; authentication errors take
// precedence over everything downstream.
func RequireAuth(tokens *auth.TokenIssuer, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		user, err := st.GetUser(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// RequireActive must run after RequireAuth; rejects inactive accounts.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := Principal(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account inactive"})
			return
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireActive; rejects non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := Principal(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// Principal returns the resolved user for the request, or nil when no
// auth middleware ran.
func Principal(c *gin.Context) *models.User {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// CanAccess is the ownership predicate: a row belonging to ownerID is
// visible to its owner and to admins. Handlers on privacy-sensitive
// rows answer a false result with the same 404 as a missing id, so
// non-owners cannot probe which ids exist.
func CanAccess(principal *models.User, ownerID string) bool {
	return principal.ID == ownerID || principal.IsAdmin()
}
