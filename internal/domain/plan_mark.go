package domain

import "time"

// PlanMark is a queued mark-plan-used call that failed after a publish.
// The retry task replays it with the internal token until it succeeds or
// runs out of attempts.
type PlanMark struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	PurchaseID string `json:"purchaseId" gorm:"size:36;not null;uniqueIndex:idx_plan_mark_target"`
	PropertyID string `json:"propertyId" gorm:"size:36;not null;uniqueIndex:idx_plan_mark_target"`
	UserID     int64  `json:"userId" gorm:"index;not null"`

	Attempts  int        `json:"attempts"`
	LastError string     `json:"lastError"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DoneAt    *time.Time `json:"doneAt" gorm:"index"`
}

func (PlanMark) TableName() string { return "plan_mark_queue" }

func (m *PlanMark) IsDone() bool {
	return m.DoneAt != nil
}

// Exhausted reports whether the entry has used up maxAttempts.
func (m *PlanMark) Exhausted(maxAttempts int) bool {
	return m.Attempts >= maxAttempts
}
