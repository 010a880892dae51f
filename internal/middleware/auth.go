package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/response"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxToken  = "bearer_token"
)

// JWTAuth validates the bearer token and stores user_id and role on the context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Set(ctxToken, parts[1])
		c.Next()
	}
}

func UserID(c *gin.Context) int64 { return c.GetInt64(ctxUserID) }

func Role(c *gin.Context) string { return c.GetString(ctxRole) }

// BearerToken returns the raw token accepted by JWTAuth, for forwarding downstream.
func BearerToken(c *gin.Context) string { return c.GetString(ctxToken) }

// PropertyOwnerLookup resolves the owner of a property.
type PropertyOwnerLookup interface {
	OwnerOf(ctx context.Context, propertyID string) (int64, error)
}

// IDSource extracts a resource id from the request.
type IDSource func(c *gin.Context) string

func FromParam(name string) IDSource {
	return func(c *gin.Context) string { return c.Param(name) }
}

func FromQuery(name string) IDSource {
	return func(c *gin.Context) string { return c.Query(name) }
}

// OwnershipChecker verifies the caller owns the addressed property. Admins pass.
type OwnershipChecker struct {
	properties PropertyOwnerLookup
}

func NewOwnershipChecker(properties PropertyOwnerLookup) *OwnershipChecker {
	return &OwnershipChecker{properties: properties}
}

func (oc *OwnershipChecker) CheckPropertyOwnership(source IDSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == 0 {
			response.Abort(c, http.StatusUnauthorized, apperr.CodeUnauthorized, "Authentication required")
			return
		}

		propertyID := strings.TrimSpace(source(c))
		if propertyID == "" {
			response.Abort(c, http.StatusBadRequest, apperr.CodeInvalidID, "Property id is required")
			return
		}

		ownerID, err := oc.properties.OwnerOf(c.Request.Context(), propertyID)
		if err != nil {
			response.FromError(c, err)
			c.Abort()
			return
		}

		if ownerID != userID && Role(c) != jwt.RoleAdmin {
			response.Abort(c, http.StatusForbidden, apperr.CodeForbidden, "You don't own this property")
			return
		}

		c.Next()
	}
}
