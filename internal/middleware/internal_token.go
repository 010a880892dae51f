package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"groupstays/internal/pkg/logger"
	"groupstays/internal/pkg/response"
)

// InternalTokenAuth protects service-to-service endpoints. Only the bcrypt
// hash of the shared token is configured on this side.
func InternalTokenAuth(tokenHash string, log *logger.Logger) gin.HandlerFunc {
	hash := []byte(strings.TrimSpace(tokenHash))

	return func(c *gin.Context) {
		if len(hash) == 0 {
			logAuthFailure(c, log, http.StatusServiceUnavailable, "token_not_configured")
			response.Abort(c, http.StatusServiceUnavailable, "INTERNAL_AUTH_DISABLED", "Internal endpoints are not configured")
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logAuthFailure(c, log, http.StatusUnauthorized, "missing_auth")
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logAuthFailure(c, log, http.StatusUnauthorized, "invalid_auth_format")
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		if bcrypt.CompareHashAndPassword(hash, []byte(parts[1])) != nil {
			logAuthFailure(c, log, http.StatusForbidden, "invalid_token")
			response.Abort(c, http.StatusForbidden, "AUTH_INVALID", "Invalid internal token")
			return
		}

		c.Next()
	}
}

func logAuthFailure(c *gin.Context, log *logger.Logger, status int, reason string) {
	log.Warn("internal_auth_failed",
		"status", status,
		"reason", reason,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"request_id", requestID(c),
	)
}
