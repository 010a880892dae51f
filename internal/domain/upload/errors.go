package upload

import (
	"errors"
	"net/http"

	"groupstays/internal/pkg/apperr"
)

var ErrUploadNotFound = errors.New("upload not found")

var (
	errNoFile       = apperr.BadRequest("NO_FILE", "No file provided")
	errEmpty        = apperr.BadRequest("EMPTY_FILE", "File is empty")
	errTooLarge     = apperr.New(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "File exceeds the 5 MB limit")
	errInvalidMime  = apperr.BadRequest("INVALID_FILE_TYPE", "Only JPEG, PNG and WebP images are allowed")
	errNotOwnUpload = apperr.Forbidden("You do not own this upload")
)
