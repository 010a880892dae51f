package booking

import "errors"

const CodeInvalidStatus = "INVALID_STATUS"

var ErrNotFound = errors.New("booking not found")
