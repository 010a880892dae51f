package wizard

type CreateSessionRequest struct {
	PropertyID      string `json:"propertyId" validate:"omitempty,max=64"`
	PurchaseID      string `json:"purchaseId" validate:"omitempty,max=64"`
	PlanID          string `json:"planId" validate:"omitempty,oneof=bronze silver gold"`
	PaymentIntentID string `json:"paymentIntentId" validate:"omitempty,max=255"`
	Step            int    `json:"step" validate:"gte=0,lte=8"`
}

type UpdateFieldsRequest struct {
	Fields map[string]any `json:"fields" validate:"required,min=1"`
}

type JumpRequest struct {
	Step int `json:"step" validate:"required,gte=1,lte=8"`
}

type MediaURLRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type ReorderRequest struct {
	Index     int    `json:"index" validate:"gte=0"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type HeroRequest struct {
	Index int `json:"index" validate:"gte=0"`
}
