package property

import "errors"

const (
	CodeMissingRequired = "MISSING_REQUIRED_FIELD"
	CodeSleepsRange     = "INVALID_SLEEPS_RANGE"
	CodeInvalidPrice    = "INVALID_PRICE"
	CodeRoomCount       = "INVALID_ROOM_COUNT"
	CodeDuplicateSlug   = "DUPLICATE_SLUG"
	CodePaymentRequired = "PAYMENT_REQUIRED"
	CodeInvalidStatus   = "INVALID_STATUS"
	CodeInvalidJSON     = "INVALID_JSON"
	CodeNotReviewable   = "NOT_REVIEWABLE"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotReviewable    = errors.New("property is not awaiting approval")
)
