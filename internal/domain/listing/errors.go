package listing

import "errors"

var (
	ErrUnknownField    = errors.New("unknown listing field")
	ErrFieldType       = errors.New("value has the wrong type for field")
	ErrStepInvalid     = errors.New("current step has missing or invalid fields")
	ErrStepLocked      = errors.New("complete the earlier steps first")
	ErrFileTooLarge    = errors.New("file exceeds the 5 MB limit")
	ErrInvalidMime     = errors.New("file type is not allowed")
	ErrMediaFull       = errors.New("image limit reached")
	ErrIndexOutOfRange = errors.New("image index out of range")
)
