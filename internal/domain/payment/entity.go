package payment

import "time"

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Record is one charge taken from an owner. Amount is stored in pence.
type Record struct {
	ID              int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID          int64     `gorm:"column:user_id;index" json:"userId"`
	Amount          int64     `gorm:"column:amount" json:"amount"`
	Currency        string    `gorm:"column:currency;size:3" json:"currency"`
	Status          Status    `gorm:"column:status;size:16" json:"status"`
	Description     string    `gorm:"column:description" json:"description"`
	PaymentIntentID string    `gorm:"column:payment_intent_id;index" json:"paymentIntentId,omitempty"`
	PlanID          string    `gorm:"column:plan_id" json:"planId,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Record) TableName() string { return "payments" }

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"hasMore"`
}

type History struct {
	Payments   []*Record  `json:"payments"`
	Pagination Pagination `json:"pagination"`
}
