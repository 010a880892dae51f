package wizard

import (
	"errors"
	"net/http"

	"groupstays/internal/pkg/apperr"
)

const (
	CodeSessionBusy     = "SESSION_BUSY"
	CodeSessionNotFound = "SESSION_NOT_FOUND"
	CodeInvalidField    = "INVALID_FIELD"
	CodeInvalidStep     = "INVALID_STEP"
	CodeInvalidMedia    = "INVALID_MEDIA"
	CodeLoadFailed      = "LOAD_FAILED"
	CodeSaveFailed      = "SAVE_FAILED"
	CodePublishFailed   = "PUBLISH_FAILED"
)

const (
	msgSaveFailed    = "Failed to save draft"
	msgPublishFailed = "Failed to publish property"
	msgNeedImage     = "At least one image is required"
)

var (
	ErrBusy            = errors.New("a save or publish is already in progress")
	ErrSessionNotFound = errors.New("wizard session not found")
)

func busyError() *apperr.Error {
	return apperr.Wrap(ErrBusy, http.StatusConflict, CodeSessionBusy, "A save or publish is already in progress")
}

func notFoundError() *apperr.Error {
	return apperr.Wrap(ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound, "Wizard session not found")
}
