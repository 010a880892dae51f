package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/response"
)

// RequireRole allows the request through when the token carries any of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			response.Abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized, "Role not found in token")
			return
		}

		if !slices.Contains(roles, role.(string)) {
			response.Abort(c, http.StatusForbidden, apperr.CodeForbidden, "Access denied: insufficient permissions")
			return
		}

		c.Next()
	}
}

func OwnerOnly() gin.HandlerFunc {
	return RequireRole(jwt.RoleOwner, jwt.RoleAdmin)
}

func AdminOnly() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin)
}
