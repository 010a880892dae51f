package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"groupstays/internal/pkg/apperr"
)

// JSON writes data as the body without an envelope; callers of the property
// API read records directly.
func JSON(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"error": message,
		"code":  code,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"error":   message,
		"code":    code,
		"details": details,
	})
}

// FromError renders err. Non-application errors are attached to the gin
// context for the error logger and reported as a generic 500.
func FromError(c *gin.Context, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, apperr.CodeInternal, "Internal server error")
		return
	}
	if ae.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if ae.Details != nil {
		ErrorWithDetails(c, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	Error(c, ae.Status, ae.Code, ae.Message)
}

// Abort renders an error and stops the handler chain. Used by middleware.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}
