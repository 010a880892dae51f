package dashboard

import (
	"context"

	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/payment"
	"groupstays/internal/domain/plan"
	"groupstays/internal/domain/property"
)

// PropertyAPI is the part of the Property API client the dashboard reads
// and mutates through.
type PropertyAPI interface {
	ListProperties(ctx context.Context, token, status string) ([]*property.Property, error)
	SubmitProperty(ctx context.Context, token, id string) (*property.Property, error)
	DeleteProperty(ctx context.Context, token, id string) error
	Availability(ctx context.Context, token, id string) (*property.Availability, error)

	Bookings(ctx context.Context, token string, limit int) ([]*booking.Booking, error)
	UpdateBookingStatus(ctx context.Context, token string, id int64, status booking.Status) (*booking.Booking, error)
	DeleteBooking(ctx context.Context, token string, id int64) error

	Enquiries(ctx context.Context, token, status, propertyID string) (*enquiry.List, error)
	UpdateEnquiryStatus(ctx context.Context, token string, id int64, status enquiry.Status) (*enquiry.Enquiry, error)

	PaymentHistory(ctx context.Context, token string, limit, offset int) (*payment.History, error)
	Plans(ctx context.Context) ([]*plan.Plan, error)
	PlanPurchases(ctx context.Context, token string) ([]*plan.Purchase, error)
}
