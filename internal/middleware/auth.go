package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/toomanyjoshes/terminalchat/internal/store"
	"github.com/toomanyjoshes/terminalchat/pkg/utils"
)

// AuthMiddleware resolves the bearer token against the session store and
// puts the authenticated username into the request context. Error bodies
// match the legacy wire contract exactly.
func AuthMiddleware(sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			c.Abort()
			return
		}

		token := utils.StripBearer(authHeader)
		username, ok, err := sessions.Resolve(token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Set("token", token)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the token if present but never aborts.
// It sets "username" and "token" in context only on success. Logout uses
// this: logging out without a valid token still succeeds.
func OptionalAuthMiddleware(sessions *store.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		token := utils.StripBearer(authHeader)
		username, ok, err := sessions.Resolve(token)
		if err == nil && ok {
			c.Set("username", username)
			c.Set("token", token)
		}
		c.Next()
	}
}
