package booking

import "time"

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// Blocking reports whether the stay occupies the calendar.
func (s Status) Blocking() bool {
	return s == StatusConfirmed || s == StatusPending
}

// Booking is a guest stay at a property.
type Booking struct {
	ID            int64     `gorm:"column:id;primaryKey" json:"id"`
	PropertyID    string    `gorm:"column:property_id;index;size:36" json:"propertyId"`
	GuestName     string    `gorm:"column:guest_name" json:"guestName"`
	GuestEmail    string    `gorm:"column:guest_email" json:"guestEmail"`
	GuestPhone    string    `gorm:"column:guest_phone" json:"guestPhone,omitempty"`
	CheckIn       time.Time `gorm:"column:check_in" json:"checkInDate"`
	CheckOut      time.Time `gorm:"column:check_out" json:"checkOutDate"`
	Guests        int       `gorm:"column:guests" json:"numberOfGuests"`
	TotalPrice    float64   `gorm:"column:total_price" json:"totalPrice"`
	BookingStatus Status    `gorm:"column:booking_status;size:16" json:"bookingStatus"`
	SpecialNotes  string    `gorm:"column:special_notes" json:"specialRequests,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updatedAt"`

	PropertyTitle string `gorm:"column:property_title;->;-:migration" json:"propertyName,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

// StatusChange is the realtime payload for booking updates.
type StatusChange struct {
	BookingID  int64  `json:"bookingId"`
	PropertyID string `json:"propertyId"`
	Status     Status `json:"bookingStatus"`
}
