package dashboard

import (
	"net/url"
	"strings"

	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/payment"
	"groupstays/internal/domain/plan"
	"groupstays/internal/domain/property"
)

type View string

const (
	ViewOverview     View = "overview"
	ViewBookings     View = "bookings"
	ViewEnquiries    View = "enquiries"
	ViewProperties   View = "properties"
	ViewApprovals    View = "approvals"
	ViewPayments     View = "payments"
	ViewAvailability View = "availability"
	ViewSubscription View = "subscription"
	ViewSettings     View = "settings"
)

var Views = []View{
	ViewOverview, ViewBookings, ViewEnquiries, ViewProperties, ViewApprovals,
	ViewPayments, ViewAvailability, ViewSubscription, ViewSettings,
}

func ParseView(s string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Views {
		if v == known {
			return v, true
		}
	}
	return "", false
}

// Approval and enquiry filter values.
const (
	FilterAll = "all"

	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

func validApprovalFilter(f string) bool {
	switch f {
	case FilterAll, ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

func validEnquiryFilter(f string) bool {
	return f == FilterAll || enquiry.Status(f).Valid()
}

// Section is the load status every view carries.
type Section struct {
	Loaded bool   `json:"loaded"`
	Error  string `json:"error,omitempty"`
}

type OverviewState struct {
	Section
}

type BookingsState struct {
	Section
	Items []*booking.Booking `json:"items"`
}

type EnquiriesState struct {
	Section
	Filter       string                 `json:"filter"`
	Items        []*enquiry.Enquiry     `json:"items"`
	StatusCounts map[enquiry.Status]int `json:"statusCounts"`
}

type PropertiesState struct {
	Section
	Items []*property.Property `json:"items"`
}

// ApprovalsState always holds every property; Filter only narrows what is
// displayed.
type ApprovalsState struct {
	Section
	Filter string               `json:"filter"`
	Items  []*property.Property `json:"items"`
}

type PaymentsState struct {
	Section
	Items      []*payment.Record  `json:"items"`
	Pagination payment.Pagination `json:"pagination"`
}

type AvailabilityState struct {
	Section
	PropertyID string                 `json:"propertyId,omitempty"`
	Data       *property.Availability `json:"data,omitempty"`
}

type SubscriptionState struct {
	Section
	Plans     []*plan.Plan     `json:"plans"`
	Purchases []*plan.Purchase `json:"purchases"`
}

// State is the whole dashboard for one owner. It is only changed through
// Reduce.
type State struct {
	View               View   `json:"view"`
	SelectedPropertyID string `json:"selectedPropertyId,omitempty"`
	Hydrated           bool   `json:"hydrated"`

	Overview     OverviewState     `json:"overview"`
	Bookings     BookingsState     `json:"bookings"`
	Enquiries    EnquiriesState    `json:"enquiries"`
	Properties   PropertiesState   `json:"properties"`
	Approvals    ApprovalsState    `json:"approvals"`
	Payments     PaymentsState     `json:"payments"`
	Availability AvailabilityState `json:"availability"`
	Subscription SubscriptionState `json:"subscription"`
}

func NewState() State {
	return State{
		View:      ViewOverview,
		Enquiries: EnquiriesState{Filter: FilterAll},
		Approvals: ApprovalsState{Filter: ApprovalPending},
	}
}

// Action is a discrete change to State.
type Action interface {
	action()
}

type (
	SetView struct{ View View }

	// Hydrate applies the page's query string. Only the first Hydrate on a
	// state has any effect.
	Hydrate struct{ Query url.Values }

	// SelectAvailability switches to the availability view for one property.
	SelectAvailability struct{ PropertyID string }

	SetApprovalFilter struct{ Filter string }
	SetEnquiryFilter  struct{ Filter string }

	OverviewLoaded   struct{}
	BookingsLoaded   struct{ Items []*booking.Booking }
	EnquiriesLoaded  struct{ List *enquiry.List }
	PropertiesLoaded struct{ Items []*property.Property }
	ApprovalsLoaded  struct{ Items []*property.Property }
	PaymentsLoaded   struct{ History *payment.History }

	AvailabilityLoaded struct {
		PropertyID string
		Data       *property.Availability
	}

	SubscriptionLoaded struct {
		Plans     []*plan.Plan
		Purchases []*plan.Purchase
	}

	LoadFailed struct {
		View  View
		Error string
	}

	PropertyDeleted   struct{ ID string }
	PropertySubmitted struct{ Property *property.Property }

	EnquiryStatusChanged struct {
		ID     int64
		Status enquiry.Status
	}

	BookingStatusChanged struct {
		ID     int64
		Status booking.Status
	}

	BookingDeleted struct{ ID int64 }
)

func (SetView) action()              {}
func (Hydrate) action()              {}
func (SelectAvailability) action()   {}
func (SetApprovalFilter) action()    {}
func (SetEnquiryFilter) action()     {}
func (OverviewLoaded) action()       {}
func (BookingsLoaded) action()       {}
func (EnquiriesLoaded) action()      {}
func (PropertiesLoaded) action()     {}
func (ApprovalsLoaded) action()      {}
func (PaymentsLoaded) action()       {}
func (AvailabilityLoaded) action()   {}
func (SubscriptionLoaded) action()   {}
func (LoadFailed) action()           {}
func (PropertyDeleted) action()      {}
func (PropertySubmitted) action()    {}
func (EnquiryStatusChanged) action() {}
func (BookingStatusChanged) action() {}
func (BookingDeleted) action()       {}

// Reduce returns s with a applied. s is not modified; slices that change
// are copied.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetView:
		if _, ok := ParseView(string(a.View)); ok {
			s.View = a.View
		}

	case Hydrate:
		if s.Hydrated {
			return s
		}
		s.Hydrated = true
		if v, ok := ParseView(a.Query.Get("view")); ok {
			s.View = v
		} else {
			s.View = ViewOverview
		}
		if id := strings.TrimSpace(a.Query.Get("propertyId")); id != "" {
			s.SelectedPropertyID = id
		}

	case SelectAvailability:
		s.View = ViewAvailability
		s.SelectedPropertyID = a.PropertyID
		if s.Availability.PropertyID != a.PropertyID {
			s.Availability = AvailabilityState{PropertyID: a.PropertyID}
		}

	case SetApprovalFilter:
		if validApprovalFilter(a.Filter) {
			s.Approvals.Filter = a.Filter
		}

	case SetEnquiryFilter:
		if validEnquiryFilter(a.Filter) {
			s.Enquiries.Filter = a.Filter
		}

	case OverviewLoaded:
		s.Overview.Section = Section{Loaded: true}

	case BookingsLoaded:
		s.Bookings.Section = Section{Loaded: true}
		s.Bookings.Items = a.Items

	case EnquiriesLoaded:
		s.Enquiries.Section = Section{Loaded: true}
		if a.List != nil {
			s.Enquiries.Items = a.List.Enquiries
			s.Enquiries.StatusCounts = a.List.StatusCounts
		}

	case PropertiesLoaded:
		s.Properties.Section = Section{Loaded: true}
		s.Properties.Items = a.Items

	case ApprovalsLoaded:
		s.Approvals.Section = Section{Loaded: true}
		s.Approvals.Items = a.Items

	case PaymentsLoaded:
		s.Payments.Section = Section{Loaded: true}
		if a.History != nil {
			s.Payments.Items = a.History.Payments
			s.Payments.Pagination = a.History.Pagination
		}

	case AvailabilityLoaded:
		if a.PropertyID != s.SelectedPropertyID {
			return s
		}
		s.Availability = AvailabilityState{Section: Section{Loaded: true}, PropertyID: a.PropertyID, Data: a.Data}

	case SubscriptionLoaded:
		s.Subscription.Section = Section{Loaded: true}
		s.Subscription.Plans = a.Plans
		s.Subscription.Purchases = a.Purchases

	case LoadFailed:
		if sec := s.section(a.View); sec != nil {
			*sec = Section{Error: a.Error}
		}

	case PropertyDeleted:
		s.Properties.Items = withoutProperty(s.Properties.Items, a.ID)
		s.Approvals.Items = withoutProperty(s.Approvals.Items, a.ID)
		if s.SelectedPropertyID == a.ID {
			s.SelectedPropertyID = ""
			s.Availability = AvailabilityState{}
		}

	case PropertySubmitted:
		if a.Property != nil {
			s.Properties.Items = replaceProperty(s.Properties.Items, a.Property)
			s.Approvals.Items = replaceProperty(s.Approvals.Items, a.Property)
		}

	case EnquiryStatusChanged:
		s.Enquiries = enquiryStatus(s.Enquiries, a.ID, a.Status)

	case BookingStatusChanged:
		items := make([]*booking.Booking, len(s.Bookings.Items))
		for i, b := range s.Bookings.Items {
			if b.ID == a.ID {
				cp := *b
				cp.BookingStatus = a.Status
				b = &cp
			}
			items[i] = b
		}
		s.Bookings.Items = items

	case BookingDeleted:
		items := make([]*booking.Booking, 0, len(s.Bookings.Items))
		for _, b := range s.Bookings.Items {
			if b.ID != a.ID {
				items = append(items, b)
			}
		}
		s.Bookings.Items = items
	}
	return s
}

func (s *State) section(v View) *Section {
	switch v {
	case ViewOverview:
		return &s.Overview.Section
	case ViewBookings:
		return &s.Bookings.Section
	case ViewEnquiries:
		return &s.Enquiries.Section
	case ViewProperties:
		return &s.Properties.Section
	case ViewApprovals:
		return &s.Approvals.Section
	case ViewPayments:
		return &s.Payments.Section
	case ViewAvailability:
		return &s.Availability.Section
	case ViewSubscription:
		return &s.Subscription.Section
	}
	return nil
}

func withoutProperty(items []*property.Property, id string) []*property.Property {
	out := make([]*property.Property, 0, len(items))
	for _, p := range items {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func replaceProperty(items []*property.Property, updated *property.Property) []*property.Property {
	out := make([]*property.Property, len(items))
	for i, p := range items {
		if p.ID == updated.ID {
			p = updated
		}
		out[i] = p
	}
	return out
}

func enquiryStatus(e EnquiriesState, id int64, status enquiry.Status) EnquiriesState {
	items := make([]*enquiry.Enquiry, len(e.Items))
	counts := make(map[enquiry.Status]int, len(e.StatusCounts))
	for k, v := range e.StatusCounts {
		counts[k] = v
	}
	for i, it := range e.Items {
		if it.ID == id && it.Status != status {
			if counts[it.Status] > 0 {
				counts[it.Status]--
			}
			counts[status]++
			cp := *it
			cp.Status = status
			it = &cp
		}
		items[i] = it
	}
	e.Items = items
	e.StatusCounts = counts
	return e
}
