package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/payment"
	"groupstays/internal/domain/plan"
	"groupstays/internal/domain/property"
	"groupstays/internal/pkg/logger"
)

const (
	overviewBookings = 10
	bookingsLimit    = 50
)

// Router loads view data from the Property API and turns the results into
// actions. It never touches State itself.
type Router struct {
	api PropertyAPI
	log *logger.Logger
}

func NewRouter(api PropertyAPI, log *logger.Logger) *Router {
	return &Router{api: api, log: log}
}

// Load fetches what view needs. Every failure becomes a LoadFailed for the
// source that failed; the other sources still load.
func (r *Router) Load(ctx context.Context, token string, view View, selectedPropertyID string) []Action {
	switch view {
	case ViewOverview:
		return r.overview(ctx, token)
	case ViewBookings:
		return []Action{r.bookings(ctx, token, ViewBookings, bookingsLimit)}
	case ViewEnquiries:
		return []Action{r.enquiries(ctx, token)}
	case ViewProperties:
		return []Action{r.properties(ctx, token, ViewProperties)}
	case ViewApprovals:
		return []Action{r.properties(ctx, token, ViewApprovals)}
	case ViewPayments:
		return []Action{r.payments(ctx, token)}
	case ViewAvailability:
		return []Action{r.availability(ctx, token, selectedPropertyID)}
	case ViewSubscription:
		return []Action{r.subscription(ctx, token)}
	}
	return nil
}

func (r *Router) overview(ctx context.Context, token string) []Action {
	results := make([]Action, 3)
	var g errgroup.Group
	g.Go(func() error {
		results[0] = r.bookings(ctx, token, ViewBookings, overviewBookings)
		return nil
	})
	g.Go(func() error {
		results[1] = r.enquiries(ctx, token)
		return nil
	})
	g.Go(func() error {
		results[2] = r.properties(ctx, token, ViewProperties)
		return nil
	})
	_ = g.Wait()
	return append(results, OverviewLoaded{})
}

func (r *Router) failed(view View, err error) Action {
	r.log.Warn("dashboard load failed", "view", view, "error", err)
	return LoadFailed{View: view, Error: propertyapi.Message(err, fmt.Sprintf("Failed to load %s", view))}
}

func (r *Router) bookings(ctx context.Context, token string, view View, limit int) Action {
	items, err := r.api.Bookings(ctx, token, limit)
	if err != nil {
		return r.failed(view, err)
	}
	return BookingsLoaded{Items: orEmpty(items)}
}

func (r *Router) enquiries(ctx context.Context, token string) Action {
	list, err := r.api.Enquiries(ctx, token, FilterAll, "")
	if err != nil {
		return r.failed(ViewEnquiries, err)
	}
	return EnquiriesLoaded{List: list}
}

// properties always asks for every status so approval counts stay complete.
func (r *Router) properties(ctx context.Context, token string, view View) Action {
	items, err := r.api.ListProperties(ctx, token, property.FilterAll)
	if err != nil {
		return r.failed(view, err)
	}
	items = orEmpty(items)
	if view == ViewApprovals {
		return ApprovalsLoaded{Items: items}
	}
	return PropertiesLoaded{Items: items}
}

func (r *Router) payments(ctx context.Context, token string) Action {
	h, err := r.api.PaymentHistory(ctx, token, payment.DefaultLimit, 0)
	if err != nil {
		return r.failed(ViewPayments, err)
	}
	return PaymentsLoaded{History: h}
}

func (r *Router) availability(ctx context.Context, token, propertyID string) Action {
	if propertyID == "" {
		return LoadFailed{View: ViewAvailability, Error: "Select a property to view availability"}
	}
	data, err := r.api.Availability(ctx, token, propertyID)
	if err != nil {
		return r.failed(ViewAvailability, err)
	}
	return AvailabilityLoaded{PropertyID: propertyID, Data: data}
}

func (r *Router) subscription(ctx context.Context, token string) Action {
	var (
		plans     []*plan.Plan
		purchases []*plan.Purchase
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		plans, err = r.api.Plans(gctx)
		return err
	})
	g.Go(func() (err error) {
		purchases, err = r.api.PlanPurchases(gctx, token)
		return err
	})
	if err := g.Wait(); err != nil {
		return r.failed(ViewSubscription, err)
	}
	return SubscriptionLoaded{Plans: orEmpty(plans), Purchases: orEmpty(purchases)}
}

// Mutations. Each returns the action that patches local state.

func (r *Router) SubmitProperty(ctx context.Context, token, id string) (Action, error) {
	p, err := r.api.SubmitProperty(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return PropertySubmitted{Property: p}, nil
}

func (r *Router) DeleteProperty(ctx context.Context, token, id string) (Action, error) {
	if err := r.api.DeleteProperty(ctx, token, id); err != nil {
		return nil, err
	}
	return PropertyDeleted{ID: id}, nil
}

func (r *Router) UpdateEnquiryStatus(ctx context.Context, token string, id int64, status enquiry.Status) (Action, error) {
	if _, err := r.api.UpdateEnquiryStatus(ctx, token, id, status); err != nil {
		return nil, err
	}
	return EnquiryStatusChanged{ID: id, Status: status}, nil
}

func (r *Router) UpdateBookingStatus(ctx context.Context, token string, id int64, status booking.Status) (Action, error) {
	if _, err := r.api.UpdateBookingStatus(ctx, token, id, status); err != nil {
		return nil, err
	}
	return BookingStatusChanged{ID: id, Status: status}, nil
}

func (r *Router) DeleteBooking(ctx context.Context, token string, id int64) (Action, error) {
	if err := r.api.DeleteBooking(ctx, token, id); err != nil {
		return nil, err
	}
	return BookingDeleted{ID: id}, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
