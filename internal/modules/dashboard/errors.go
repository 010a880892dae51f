package dashboard

import (
	"errors"
	"net/http"

	"groupstays/internal/pkg/apperr"
)

const (
	CodeConfirmRequired = "CONFIRM_REQUIRED"
	CodeInvalidView     = "INVALID_VIEW"
	CodeInvalidFilter   = "INVALID_FILTER"
	CodeInvalidStatus   = "INVALID_STATUS"
)

var ErrConfirmRequired = errors.New("action requires confirmation")

func confirmError() *apperr.Error {
	return apperr.Wrap(ErrConfirmRequired, http.StatusPreconditionRequired, CodeConfirmRequired,
		"This action must be confirmed with confirm=true")
}
