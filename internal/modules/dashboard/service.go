package dashboard

import (
	"context"
	"net/url"
	"time"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/domain/booking"
	"groupstays/internal/domain/enquiry"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

type Service struct {
	store  *Store
	router *Router
	log    *logger.Logger
	now    func() time.Time
}

func NewService(store *Store, router *Router, log *logger.Logger) *Service {
	return &Service{store: store, router: router, log: log, now: time.Now}
}

// Open starts a fresh dashboard from the page query and loads its view.
func (s *Service) Open(ctx context.Context, ownerID int64, token string, query url.Values) *Snapshot {
	s.store.Reset(ownerID)
	st := s.store.Apply(ownerID, Hydrate{Query: query})
	return s.load(ctx, ownerID, token, st)
}

func (s *Service) Current(ownerID int64) *Snapshot {
	return snapshot(s.store.State(ownerID), s.now())
}

// ShowView activates view and fetches its data.
func (s *Service) ShowView(ctx context.Context, ownerID int64, token, view string) (*Snapshot, error) {
	v, ok := ParseView(view)
	if !ok {
		return nil, apperr.BadRequest(CodeInvalidView, "Unknown dashboard view")
	}
	st := s.store.Apply(ownerID, SetView{View: v})
	return s.load(ctx, ownerID, token, st), nil
}

// ViewAvailability selects a property and shows its calendar.
func (s *Service) ViewAvailability(ctx context.Context, ownerID int64, token, propertyID string) *Snapshot {
	st := s.store.Apply(ownerID, SelectAvailability{PropertyID: propertyID})
	return s.load(ctx, ownerID, token, st)
}

func (s *Service) SetFilters(ownerID int64, req *FiltersRequest) (*Snapshot, error) {
	var actions []Action
	if req.Approvals != nil {
		if !validApprovalFilter(*req.Approvals) {
			return nil, apperr.BadRequest(CodeInvalidFilter, "Approval filter must be pending, approved, rejected or all")
		}
		actions = append(actions, SetApprovalFilter{Filter: *req.Approvals})
	}
	if req.Enquiries != nil {
		if !validEnquiryFilter(*req.Enquiries) {
			return nil, apperr.BadRequest(CodeInvalidFilter, "Unknown enquiry filter")
		}
		actions = append(actions, SetEnquiryFilter{Filter: *req.Enquiries})
	}
	return snapshot(s.store.Apply(ownerID, actions...), s.now()), nil
}

func (s *Service) load(ctx context.Context, ownerID int64, token string, st State) *Snapshot {
	actions := s.router.Load(ctx, token, st.View, st.SelectedPropertyID)
	return snapshot(s.store.Apply(ownerID, actions...), s.now())
}

func (s *Service) SubmitProperty(ctx context.Context, ownerID int64, token, id string) (*Snapshot, error) {
	return s.mutate(ownerID, "Failed to submit property", func() (Action, error) {
		return s.router.SubmitProperty(ctx, token, id)
	})
}

func (s *Service) DeleteProperty(ctx context.Context, ownerID int64, token, id string, confirm bool) (*Snapshot, error) {
	if !confirm {
		return nil, confirmError()
	}
	return s.mutate(ownerID, "Failed to delete property", func() (Action, error) {
		return s.router.DeleteProperty(ctx, token, id)
	})
}

func (s *Service) UpdateEnquiryStatus(ctx context.Context, ownerID int64, token string, id int64, status string, confirm bool) (*Snapshot, error) {
	st := enquiry.Status(status)
	if !st.Valid() {
		return nil, apperr.BadRequest(CodeInvalidStatus, "Invalid enquiry status")
	}
	if !confirm {
		return nil, confirmError()
	}
	return s.mutate(ownerID, "Failed to update enquiry", func() (Action, error) {
		return s.router.UpdateEnquiryStatus(ctx, token, id, st)
	})
}

func (s *Service) UpdateBookingStatus(ctx context.Context, ownerID int64, token string, id int64, status string, confirm bool) (*Snapshot, error) {
	st := booking.Status(status)
	if !st.Valid() {
		return nil, apperr.BadRequest(CodeInvalidStatus, "Invalid booking status")
	}
	if !confirm {
		return nil, confirmError()
	}
	return s.mutate(ownerID, "Failed to update booking", func() (Action, error) {
		return s.router.UpdateBookingStatus(ctx, token, id, st)
	})
}

func (s *Service) DeleteBooking(ctx context.Context, ownerID int64, token string, id int64, confirm bool) (*Snapshot, error) {
	if !confirm {
		return nil, confirmError()
	}
	return s.mutate(ownerID, "Failed to delete booking", func() (Action, error) {
		return s.router.DeleteBooking(ctx, token, id)
	})
}

// mutate patches local state only after the API call succeeds.
func (s *Service) mutate(ownerID int64, fallback string, call func() (Action, error)) (*Snapshot, error) {
	a, err := call()
	if err != nil {
		s.log.Warn("dashboard action failed", "owner_id", ownerID, "error", err)
		return nil, apperr.Wrap(err, propertyapi.StatusOf(err), "ACTION_FAILED", propertyapi.Message(err, fallback))
	}
	return snapshot(s.store.Apply(ownerID, a), s.now()), nil
}
