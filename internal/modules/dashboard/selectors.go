package dashboard

import (
	"time"

	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/domain/property"
)

// Counts are the approval badges.
type Counts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	All      int `json:"all"`
}

// ApprovalCounts counts every submitted property whatever the active
// filter. Drafts are not part of the approval queue.
func ApprovalCounts(s State) Counts {
	var c Counts
	for _, p := range s.Approvals.Items {
		switch p.Status {
		case property.StatusPending:
			c.Pending++
		case property.StatusApproved:
			c.Approved++
		case property.StatusRejected:
			c.Rejected++
		default:
			continue
		}
		c.All++
	}
	return c
}

func approvalMatches(p *property.Property, filter string) bool {
	switch filter {
	case ApprovalPending:
		return p.Status == property.StatusPending
	case ApprovalApproved:
		return p.Status == property.StatusApproved
	case ApprovalRejected:
		return p.Status == property.StatusRejected
	}
	return p.Status != property.StatusDraft
}

func VisibleApprovals(s State) []*property.Property {
	out := []*property.Property{}
	for _, p := range s.Approvals.Items {
		if approvalMatches(p, s.Approvals.Filter) {
			out = append(out, p)
		}
	}
	return out
}

func VisibleEnquiries(s State) []*enquiry.Enquiry {
	out := []*enquiry.Enquiry{}
	for _, e := range s.Enquiries.Items {
		if s.Enquiries.Filter == FilterAll || s.Enquiries.Filter == "" || string(e.Status) == s.Enquiries.Filter {
			out = append(out, e)
		}
	}
	return out
}

// Stats are the overview tiles.
type Stats struct {
	Listings         int     `json:"listings"`
	LiveListings     int     `json:"liveListings"`
	PendingApprovals int     `json:"pendingApprovals"`
	UpcomingBookings int     `json:"upcomingBookings"`
	NewEnquiries     int     `json:"newEnquiries"`
	BookedRevenue    float64 `json:"bookedRevenue"`
}

func OverviewStats(s State, now time.Time) Stats {
	var st Stats
	for _, p := range s.Properties.Items {
		st.Listings++
		switch p.Status {
		case property.StatusApproved:
			st.LiveListings++
		case property.StatusPending:
			st.PendingApprovals++
		}
	}
	for _, b := range s.Bookings.Items {
		if b.BookingStatus == booking.StatusConfirmed {
			st.BookedRevenue += b.TotalPrice
		}
		if b.BookingStatus.Blocking() && b.CheckIn.After(now) {
			st.UpcomingBookings++
		}
	}
	st.NewEnquiries = s.Enquiries.StatusCounts[enquiry.StatusNew]
	return st
}

// Snapshot is the dashboard as the portal returns it.
type Snapshot struct {
	State
	ApprovalCounts   Counts               `json:"approvalCounts"`
	VisibleApprovals []*property.Property `json:"visibleApprovals"`
	VisibleEnquiries []*enquiry.Enquiry   `json:"visibleEnquiries"`
	Stats            Stats                `json:"stats"`
}

func snapshot(s State, now time.Time) *Snapshot {
	return &Snapshot{
		State:            s,
		ApprovalCounts:   ApprovalCounts(s),
		VisibleApprovals: VisibleApprovals(s),
		VisibleEnquiries: VisibleEnquiries(s),
		Stats:            OverviewStats(s, now),
	}
}
