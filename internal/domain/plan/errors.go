package plan

import "errors"

const (
	CodeInvalidPlan       = "INVALID_PLAN"
	CodeMissingIDs        = "MISSING_IDS"
	CodeNoUnusedPurchase  = "NO_UNUSED_PURCHASE"
	CodePurchaseExpired   = "PURCHASE_EXPIRED"
	CodeDuplicatePurchase = "DUPLICATE_PURCHASE"
)

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPurchaseNotFound = errors.New("plan purchase not found")
)
