// README: Firebase ID-token auth middleware; stores the caller uid on the gin context.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelplan/internal/infra"
)

const callerUIDKey = "caller_uid"

// Auth rejects requests without a valid "Authorization: Bearer <Firebase ID token>" header.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			zap.L().Debug("id token rejected", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(callerUIDKey, token.UID)
		c.Next()
	}
}

// CallerUID returns the authenticated uid, or "" when auth is disabled.
func CallerUID(c *gin.Context) string {
	if v, ok := c.Get(callerUIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
