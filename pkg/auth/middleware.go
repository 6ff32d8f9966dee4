package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "user_id"

// Identify resolves the caller from a Bearer token, falling back to the
// session cookie. Requests without either continue anonymously; a bad
// token is rejected.
func Identify(tokens *Tokens, sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a Bearer token"})
				return
			}
			claims, err := tokens.ValidateJWT(token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			c.Set(identityKey, claims.UserID)
			c.Next()
			return
		}

		if id := sessions.UserID(c.Request); id != "" {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireIdentity rejects anonymous callers.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Identity(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Log in first"})
			return
		}
		c.Next()
	}
}

// Identity is the caller id set by Identify, or "" for anonymous requests.
func Identity(c *gin.Context) string {
	return c.GetString(identityKey)
}
