package property

type SubmitRequest struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type CalendarRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"required,oneof=blocked available"`
	Note   string `json:"note" validate:"max=200"`
}
