package plan

type MarkUsedRequest struct {
	PurchaseID string `json:"purchaseId"`
	PropertyID string `json:"propertyId"`
}

// InternalMarkUsedRequest is sent by the portal retry queue.
type InternalMarkUsedRequest struct {
	PurchaseID string `json:"purchaseId"`
	PropertyID string `json:"propertyId"`
	UserID     int64  `json:"userId" validate:"required,gt=0"`
}

// RecordPurchaseRequest is the payment-provider callback body.
type RecordPurchaseRequest struct {
	UserID          int64  `json:"userId" validate:"required,gt=0"`
	PlanID          ID     `json:"planId" validate:"required"`
	PaymentIntentID string `json:"paymentIntentId" validate:"max=255"`
	Amount          *int64 `json:"amount" validate:"omitempty,gte=0"`
}

type UnusedResponse struct {
	HasUnusedPlan bool      `json:"hasUnusedPlan"`
	Purchase      *Purchase `json:"purchase"`
	Expired       bool      `json:"expired,omitempty"`
}
