package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/pkg/apperr"
)

func render(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestFromError_AppError(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		FromError(c, apperr.BadRequest("INVALID_SLEEPS_RANGE", "sleepsMax must be greater than or equal to sleepsMin"))
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sleepsMax must be greater than or equal to sleepsMin", body["error"])
	assert.Equal(t, "INVALID_SLEEPS_RANGE", body["code"])
	assert.NotContains(t, body, "details")
}

func TestFromError_Details(t *testing.T) {
	_, body := render(t, func(c *gin.Context) {
		FromError(c, apperr.Validation("Invalid request body", map[string]any{"status": "oneof"}))
	})
	assert.Equal(t, map[string]any{"status": "oneof"}, body["details"])
}

func TestFromError_UnknownIsGeneric(t *testing.T) {
	w, body := render(t, func(c *gin.Context) {
		FromError(c, errors.New("pq: relation does not exist"))
		assert.Len(t, c.Errors, 1)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["error"])
}
