package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/auth"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/server/respond"
)

const userIDKey = "userId"

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Identify reads an optional bearer token and stores its subject in context.
// Missing, malformed or invalid tokens leave the request anonymous; routes that
// need a caller reject it themselves.
func Identify(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || verifier == nil || !strings.HasPrefix(header, "Bearer ") {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			c.Next()
			return
		}
		if claims, err := verifier.Verify(token); err == nil {
			c.Set(userIDKey, claims.Subject)
		}
		c.Next()
	}
}

// RequireOwner restricts a route to the account named by the :id path
// parameter. It only enforces anything in token mode.
func RequireOwner(mode string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if mode != config.AuthModeToken {
			c.Next()
			return
		}
		caller := UserIDFromContext(c)
		if caller == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		if caller != c.Param("id") {
			respond.Error(c, http.StatusForbidden, "forbidden", "token does not grant access to this user", nil)
			return
		}
		c.Next()
	}
}

// UserIDFromContext fetches the user ID set by Identify.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(userIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
