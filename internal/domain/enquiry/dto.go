package enquiry

import "time"

type SubmitRequest struct {
	PropertyID   string     `json:"propertyId" validate:"required"`
	GuestName    string     `json:"guestName" validate:"required,max=120"`
	Email        string     `json:"email" validate:"required,email"`
	Phone        string     `json:"phone" validate:"max=40"`
	Message      string     `json:"message" validate:"required,max=4000"`
	CheckInDate  *time.Time `json:"checkInDate"`
	CheckOutDate *time.Time `json:"checkOutDate"`
	Guests       int        `json:"numberOfGuests" validate:"gte=0"`
}

type UpdateStatusRequest struct {
	ID     int64  `json:"id" validate:"required"`
	Status Status `json:"status" validate:"required"`
}
