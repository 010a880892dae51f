package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/validator"
)

const CodeInvalidJSON = "INVALID_JSON"

// BindJSON decodes the body into dst and runs its validate tags.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperr.Wrap(err, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON body")
	}
	if errs := validator.Validate(dst); errs != nil {
		return apperr.Validation("Invalid request body", validator.Details(errs))
	}
	return nil
}

// IntQuery reads a bounded integer query parameter. Out of range or
// malformed values fall back to def.
func IntQuery(c *gin.Context, name string, def, min, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return def
	}
	if v > max {
		return max
	}
	return v
}

// Int64Param parses a numeric path parameter.
func Int64Param(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, apperr.BadRequest(apperr.CodeInvalidID, "Valid ID is required")
	}
	return v, nil
}
