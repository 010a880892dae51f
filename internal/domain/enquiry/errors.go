package enquiry

import "errors"

const CodeInvalidStatus = "INVALID_STATUS"

var ErrNotFound = errors.New("enquiry not found")
