package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := jwt.New("test-secret-123", time.Hour)
	validToken, _ := jwtService.GenerateToken(42, jwt.RoleOwner)

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserID(c),
			"role":    Role(c),
			"token":   BearerToken(c) == validToken,
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+validToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":42,"role":"owner","token":true}`, w.Body.String())
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(jwt.New("wrong-secret", time.Hour)))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("This handler should not be reached")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid-jwt-here")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_NoToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(jwt.New("secret", time.Hour)))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_HEADER_MISSING")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(jwt.New("secret", time.Hour)))
	router.GET("/protected", func(c *gin.Context) {
		t.Fatal("Should not reach here")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_AUTH_FORMAT")
}

func TestRequireRole(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	router := gin.New()
	router.Use(JWTAuth(jwtService), AdminOnly())
	router.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

	owner, _ := jwtService.GenerateToken(1, jwt.RoleOwner)
	admin, _ := jwtService.GenerateToken(2, jwt.RoleAdmin)

	for token, want := range map[string]int{owner: http.StatusForbidden, admin: http.StatusOK} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code)
	}
}

type ownerMap map[string]int64

func (m ownerMap) OwnerOf(_ context.Context, id string) (int64, error) {
	owner, ok := m[id]
	if !ok {
		return 0, apperr.NotFound("Property")
	}
	return owner, nil
}

func TestCheckPropertyOwnership(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	checker := NewOwnershipChecker(ownerMap{"p1": 7})

	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.DELETE("/owner/properties/:id", checker.CheckPropertyOwnership(FromParam("id")),
		func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/properties", checker.CheckPropertyOwnership(FromQuery("id")),
		func(c *gin.Context) { c.Status(http.StatusOK) })

	owner, _ := jwtService.GenerateToken(7, jwt.RoleOwner)
	stranger, _ := jwtService.GenerateToken(8, jwt.RoleOwner)
	admin, _ := jwtService.GenerateToken(9, jwt.RoleAdmin)

	cases := []struct {
		method, path, token string
		want                int
	}{
		{http.MethodDelete, "/owner/properties/p1", owner, http.StatusNoContent},
		{http.MethodDelete, "/owner/properties/p1", stranger, http.StatusForbidden},
		{http.MethodDelete, "/owner/properties/p1", admin, http.StatusNoContent},
		{http.MethodDelete, "/owner/properties/nope", owner, http.StatusNotFound},
		{http.MethodGet, "/properties?id=p1", owner, http.StatusOK},
		{http.MethodGet, "/properties", owner, http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+tc.token)
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "%s %s", tc.method, tc.path)
	}
}
