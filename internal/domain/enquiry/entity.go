package enquiry

import "time"

type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusConverted Status = "converted"
	StatusClosed    Status = "closed"
)

var Statuses = []Status{StatusNew, StatusContacted, StatusConverted, StatusClosed}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Enquiry is a guest question about a property.
type Enquiry struct {
	ID           int64      `gorm:"column:id;primaryKey" json:"id"`
	PropertyID   string     `gorm:"column:property_id;index;size:36" json:"propertyId"`
	GuestName    string     `gorm:"column:guest_name" json:"guestName"`
	Email        string     `gorm:"column:email" json:"email"`
	Phone        string     `gorm:"column:phone" json:"phone,omitempty"`
	Message      string     `gorm:"column:message" json:"message"`
	CheckInDate  *time.Time `gorm:"column:check_in_date" json:"checkInDate,omitempty"`
	CheckOutDate *time.Time `gorm:"column:check_out_date" json:"checkOutDate,omitempty"`
	Guests       int        `gorm:"column:guests" json:"numberOfGuests,omitempty"`
	Status       Status     `gorm:"column:status;index;size:16" json:"status"`
	RespondedAt  *time.Time `gorm:"column:responded_at" json:"respondedAt,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at" json:"updatedAt"`

	PropertyTitle string `gorm:"column:property_title;->;-:migration" json:"propertyName,omitempty"`
}

func (Enquiry) TableName() string { return "enquiries" }

// List is the owner enquiries response.
type List struct {
	Enquiries    []*Enquiry     `json:"enquiries"`
	StatusCounts map[Status]int `json:"statusCounts"`
}
