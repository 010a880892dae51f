package dashboard

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/property"
)

func props(statuses ...property.Status) []*property.Property {
	out := make([]*property.Property, len(statuses))
	for i, st := range statuses {
		out[i] = &property.Property{ID: string(rune('a' + i)), Status: st}
	}
	return out
}

func TestApprovals_CountsIgnoreFilter(t *testing.T) {
	s := NewState()
	s = Reduce(s, ApprovalsLoaded{Items: props(
		property.StatusPending, property.StatusPending, property.StatusPending,
		property.StatusApproved, property.StatusApproved,
		property.StatusRejected,
	)})
	s = Reduce(s, SetApprovalFilter{Filter: ApprovalApproved})

	assert.Len(t, VisibleApprovals(s), 2)
	assert.Equal(t, Counts{Pending: 3, Approved: 2, Rejected: 1, All: 6}, ApprovalCounts(s))

	s = Reduce(s, SetApprovalFilter{Filter: FilterAll})
	assert.Len(t, VisibleApprovals(s), 6)
	assert.Equal(t, 6, ApprovalCounts(s).All)
}

func TestApprovals_DraftsExcluded(t *testing.T) {
	s := Reduce(NewState(), ApprovalsLoaded{Items: props(property.StatusDraft, property.StatusPending)})
	s = Reduce(s, SetApprovalFilter{Filter: FilterAll})
	assert.Len(t, VisibleApprovals(s), 1)
	assert.Equal(t, Counts{Pending: 1, All: 1}, ApprovalCounts(s))
}

func TestApprovals_InvalidFilterIgnored(t *testing.T) {
	s := Reduce(NewState(), SetApprovalFilter{Filter: "archived"})
	assert.Equal(t, ApprovalPending, s.Approvals.Filter)
}

func TestHydrate_OnlyOnce(t *testing.T) {
	s := Reduce(NewState(), Hydrate{Query: url.Values{"view": {"availability"}, "propertyId": {"p1"}}})
	assert.Equal(t, ViewAvailability, s.View)
	assert.Equal(t, "p1", s.SelectedPropertyID)

	s = Reduce(s, Hydrate{Query: url.Values{"view": {"payments"}}})
	assert.Equal(t, ViewAvailability, s.View)
}

func TestHydrate_UnknownViewFallsBackToOverview(t *testing.T) {
	s := NewState()
	s.View = ViewPayments
	s = Reduce(s, Hydrate{Query: url.Values{"view": {"nonsense"}}})
	assert.Equal(t, ViewOverview, s.View)
}

func TestSetView_KeepsOtherState(t *testing.T) {
	s := Reduce(NewState(), SetEnquiryFilter{Filter: "contacted"})
	s = Reduce(s, SelectAvailability{PropertyID: "p9"})
	s = Reduce(s, SetView{View: ViewEnquiries})

	assert.Equal(t, ViewEnquiries, s.View)
	assert.Equal(t, "contacted", s.Enquiries.Filter)
	assert.Equal(t, "p9", s.SelectedPropertyID)

	s = Reduce(s, SetView{View: "bogus"})
	assert.Equal(t, ViewEnquiries, s.View)
}

func TestAvailabilityLoaded_StaleResultDropped(t *testing.T) {
	s := Reduce(NewState(), SelectAvailability{PropertyID: "p1"})
	s = Reduce(s, SelectAvailability{PropertyID: "p2"})
	s = Reduce(s, AvailabilityLoaded{PropertyID: "p1", Data: &property.Availability{PropertyID: "p1"}})
	assert.False(t, s.Availability.Loaded)

	s = Reduce(s, AvailabilityLoaded{PropertyID: "p2", Data: &property.Availability{PropertyID: "p2"}})
	assert.True(t, s.Availability.Loaded)
	assert.Equal(t, "p2", s.Availability.Data.PropertyID)
}

func TestLoadFailed_OnlyAffectsThatView(t *testing.T) {
	s := Reduce(NewState(), BookingsLoaded{Items: []*booking.Booking{{ID: 1}}})
	s = Reduce(s, LoadFailed{View: ViewEnquiries, Error: "boom"})

	assert.True(t, s.Bookings.Loaded)
	assert.Equal(t, "boom", s.Enquiries.Error)
	assert.False(t, s.Enquiries.Loaded)
}

func TestEnquiryStatusChanged_PatchesItemsAndCounts(t *testing.T) {
	s := Reduce(NewState(), EnquiriesLoaded{List: &enquiry.List{
		Enquiries: []*enquiry.Enquiry{
			{ID: 1, Status: enquiry.StatusNew},
			{ID: 2, Status: enquiry.StatusNew},
		},
		StatusCounts: map[enquiry.Status]int{enquiry.StatusNew: 2, enquiry.StatusContacted: 0},
	}})
	before := s

	s = Reduce(s, EnquiryStatusChanged{ID: 2, Status: enquiry.StatusContacted})
	assert.Equal(t, enquiry.StatusContacted, s.Enquiries.Items[1].Status)
	assert.Equal(t, 1, s.Enquiries.StatusCounts[enquiry.StatusNew])
	assert.Equal(t, 1, s.Enquiries.StatusCounts[enquiry.StatusContacted])

	assert.Equal(t, enquiry.StatusNew, before.Enquiries.Items[1].Status)
	assert.Equal(t, 2, before.Enquiries.StatusCounts[enquiry.StatusNew])

	s = Reduce(s, SetEnquiryFilter{Filter: "new"})
	require.Len(t, VisibleEnquiries(s), 1)
	assert.Equal(t, int64(1), VisibleEnquiries(s)[0].ID)
}

func TestBookingMutations(t *testing.T) {
	s := Reduce(NewState(), BookingsLoaded{Items: []*booking.Booking{
		{ID: 1, BookingStatus: booking.StatusPending},
		{ID: 2, BookingStatus: booking.StatusPending},
	}})
	s = Reduce(s, BookingStatusChanged{ID: 1, Status: booking.StatusConfirmed})
	assert.Equal(t, booking.StatusConfirmed, s.Bookings.Items[0].BookingStatus)

	s = Reduce(s, BookingDeleted{ID: 2})
	require.Len(t, s.Bookings.Items, 1)
	assert.Equal(t, int64(1), s.Bookings.Items[0].ID)
}

func TestPropertyMutations(t *testing.T) {
	items := props(property.StatusDraft, property.StatusPending)
	s := Reduce(NewState(), PropertiesLoaded{Items: items})
	s = Reduce(s, ApprovalsLoaded{Items: items})
	s = Reduce(s, SelectAvailability{PropertyID: "b"})

	s = Reduce(s, PropertySubmitted{Property: &property.Property{ID: "a", Status: property.StatusPending}})
	assert.Equal(t, property.StatusPending, s.Properties.Items[0].Status)
	assert.Equal(t, 2, ApprovalCounts(s).Pending)
	assert.Equal(t, property.StatusDraft, items[0].Status)

	s = Reduce(s, PropertyDeleted{ID: "b"})
	assert.Len(t, s.Properties.Items, 1)
	assert.Len(t, s.Approvals.Items, 1)
	assert.Empty(t, s.SelectedPropertyID)
}

func TestOverviewStats(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	s := Reduce(NewState(), PropertiesLoaded{Items: props(property.StatusApproved, property.StatusPending, property.StatusDraft)})
	s = Reduce(s, BookingsLoaded{Items: []*booking.Booking{
		{ID: 1, BookingStatus: booking.StatusConfirmed, TotalPrice: 1200, CheckIn: now.AddDate(0, 1, 0)},
		{ID: 2, BookingStatus: booking.StatusPending, TotalPrice: 800, CheckIn: now.AddDate(0, 2, 0)},
		{ID: 3, BookingStatus: booking.StatusConfirmed, TotalPrice: 500, CheckIn: now.AddDate(0, -1, 0)},
		{ID: 4, BookingStatus: booking.StatusCancelled, TotalPrice: 900, CheckIn: now.AddDate(0, 1, 0)},
	}})
	s = Reduce(s, EnquiriesLoaded{List: &enquiry.List{StatusCounts: map[enquiry.Status]int{enquiry.StatusNew: 4}}})

	st := OverviewStats(s, now)
	assert.Equal(t, Stats{
		Listings:         3,
		LiveListings:     1,
		PendingApprovals: 1,
		UpcomingBookings: 2,
		NewEnquiries:     4,
		BookedRevenue:    1700,
	}, st)
}
