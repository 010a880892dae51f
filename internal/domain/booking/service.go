package booking

import (
	"context"
	"errors"
	"time"

	"groupstays/internal/domain/property"
	"groupstays/internal/domain/realtime"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// Notifier pushes realtime events to a user.
type Notifier interface {
	SendToUser(userID int64, ev realtime.Event) bool
}

type Service struct {
	repo     Repository
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier, log *logger.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, log: log, now: time.Now}
}

func (s *Service) Create(ctx context.Context, b *Booking) error {
	if !b.BookingStatus.Valid() {
		b.BookingStatus = StatusPending
	}
	now := s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	return s.repo.Create(ctx, b)
}

// ListForOwner returns the newest bookings across the owner's properties.
func (s *Service) ListForOwner(ctx context.Context, ownerID int64, limit int) ([]*Booking, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	out, err := s.repo.ListByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []*Booking{}
	}
	return out, nil
}

func (s *Service) UpdateStatus(ctx context.Context, ownerID, id int64, status Status) (*Booking, error) {
	if !status.Valid() {
		return nil, apperr.BadRequest(CodeInvalidStatus, "bookingStatus must be one of confirmed, pending, cancelled, rejected")
	}
	b, err := s.getForOwner(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, apperr.Internal(err)
	}
	b.BookingStatus = status
	b.UpdatedAt = now

	s.notifier.SendToUser(ownerID, realtime.Event{
		Type:    realtime.EventBookingStatus,
		Payload: StatusChange{BookingID: b.ID, PropertyID: b.PropertyID, Status: status},
	})
	return b, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.getForOwner(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// StaysBetween satisfies property.StayLister. Cancelled and rejected
// bookings do not occupy the calendar.
func (s *Service) StaysBetween(ctx context.Context, propertyID string, from, to time.Time) ([]property.Stay, error) {
	rows, err := s.repo.Overlapping(ctx, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]property.Stay, 0, len(rows))
	for _, b := range rows {
		if !b.BookingStatus.Blocking() {
			continue
		}
		out = append(out, property.Stay{
			ID:        b.ID,
			GuestName: b.GuestName,
			CheckIn:   b.CheckIn,
			CheckOut:  b.CheckOut,
			Status:    string(b.BookingStatus),
		})
	}
	return out, nil
}

func (s *Service) getForOwner(ctx context.Context, ownerID, id int64) (*Booking, error) {
	b, err := s.repo.GetForOwner(ctx, ownerID, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("Booking")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return b, nil
}
