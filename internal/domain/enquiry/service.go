package enquiry

import (
	"context"
	"errors"
	"strings"
	"time"

	"groupstays/internal/pkg/apperr"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Submit records a guest enquiry (public endpoint).
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Enquiry, error) {
	now := s.now()
	e := &Enquiry{
		PropertyID:   req.PropertyID,
		GuestName:    strings.TrimSpace(req.GuestName),
		Email:        strings.TrimSpace(req.Email),
		Phone:        strings.TrimSpace(req.Phone),
		Message:      strings.TrimSpace(req.Message),
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Guests:       req.Guests,
		Status:       StatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperr.Internal(err)
	}
	return e, nil
}

// ListForOwner filters by status ("" or "all" for every status) and property.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64, status, propertyID string) (*List, error) {
	f := Filter{PropertyID: strings.TrimSpace(propertyID)}
	if status = strings.ToLower(strings.TrimSpace(status)); status != "" && status != "all" {
		f.Status = Status(status)
		if !f.Status.Valid() {
			return nil, apperr.BadRequest(CodeInvalidStatus, "status must be one of all, new, contacted, converted, closed")
		}
	}

	items, err := s.repo.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	counts, err := s.repo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if items == nil {
		items = []*Enquiry{}
	}
	return &List{Enquiries: items, StatusCounts: counts}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id int64, status Status) (*Enquiry, error) {
	if !status.Valid() {
		return nil, apperr.BadRequest(CodeInvalidStatus, "status must be one of new, contacted, converted, closed")
	}
	e, err := s.repo.GetForOwner(ctx, ownerID, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Enquiry")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, apperr.Internal(err)
	}
	e.Status = status
	e.UpdatedAt = now
	if status == StatusContacted {
		e.RespondedAt = &now
	}
	return e, nil
}
