package property

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"groupstays/internal/database"
	"groupstays/internal/domain/listing"
	"groupstays/internal/domain/realtime"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

// AvailabilityWindow is how far ahead the availability view looks.
const AvailabilityWindow = 6

// StayLister is implemented by the booking service.
type StayLister interface {
	StaysBetween(ctx context.Context, propertyID string, from, to time.Time) ([]Stay, error)
}

// Notifier pushes realtime events to a user.
type Notifier interface {
	SendToUser(userID int64, ev realtime.Event) bool
}

type Service struct {
	repo     Repository
	stays    StayLister
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, stays StayLister, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		stays:    stays,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// OwnerOf satisfies middleware.PropertyOwnerLookup.
func (s *Service) OwnerOf(ctx context.Context, id string) (int64, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}
	return p.OwnerID, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Property, error) {
	return s.get(ctx, id)
}

// Create stores a new listing for ownerID.
func (s *Service) Create(ctx context.Context, ownerID int64, in listing.Payload) (*Property, error) {
	normalise(&in)
	publish := wantsPublish(&in)

	id := uuid.NewString()
	if in.Slug == "" {
		in.Slug = listing.Slugify(in.Title)
	}
	if in.Slug == "" && !publish {
		in.Slug = "draft-" + id[:8]
	}

	if err := validate(&in, publish); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, in.Slug, ""); err != nil {
		return nil, err
	}

	now := s.now()
	p := &Property{ID: id, OwnerID: ownerID, CreatedAt: now, UpdatedAt: now}
	p.apply(in)
	setModeration(p, publish)

	if err := s.repo.Create(ctx, p); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, duplicateSlug()
		}
		return nil, apperr.Internal(err)
	}
	return p, nil
}

// Update merges patch onto the stored listing. Keys absent from patch keep
// their stored values.
func (s *Service) Update(ctx context.Context, id string, patch json.RawMessage) (*Property, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	in := p.Payload()
	if err := json.Unmarshal(patch, &in); err != nil {
		return nil, apperr.Wrap(err, http.StatusBadRequest, CodeInvalidJSON, "Invalid JSON body")
	}
	normalise(&in)
	publish := wantsPublish(&in)
	if in.Slug == "" {
		in.Slug = listing.Slugify(in.Title)
	}
	if in.Slug == "" && !publish {
		in.Slug = "draft-" + p.ID[:8]
	}

	if err := validate(&in, publish); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, in.Slug, p.ID); err != nil {
		return nil, err
	}

	p.apply(in)
	setModeration(p, publish)
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, duplicateSlug()
		}
		return nil, apperr.Internal(err)
	}
	return p, nil
}

// Submit sends a paid draft for review.
func (s *Service) Submit(ctx context.Context, ownerID int64, id string) (*Property, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, apperr.Forbidden("You don't own this property")
	}
	if !p.IsPaid() {
		return nil, apperr.New(http.StatusPaymentRequired, CodePaymentRequired, "A paid plan is required before submitting")
	}

	in := p.Payload()
	if err := validate(&in, true); err != nil {
		return nil, err
	}

	setModeration(p, true)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apperr.Internal(err)
	}
	return p, nil
}

func (s *Service) ListForOwner(ctx context.Context, ownerID int64, filter string) ([]*Property, error) {
	statuses, aerr := filterStatuses(filter)
	if aerr != nil {
		return nil, aerr
	}
	props, err := s.repo.ListByOwner(ctx, ownerID, statuses)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return props, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return apperr.NotFound("Property")
		}
		return apperr.Internal(err)
	}
	return nil
}

// Availability returns calendar rows and bookings from today for six months.
func (s *Service) Availability(ctx context.Context, id string) (*Availability, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, AvailabilityWindow, 0)

	calendar, err := s.repo.CalendarBetween(ctx, id, from, to)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	stays, err := s.stays.StaysBetween(ctx, id, from, to)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if calendar == nil {
		calendar = []CalendarEntry{}
	}
	if stays == nil {
		stays = []Stay{}
	}
	return &Availability{PropertyID: id, From: from, To: to, Calendar: calendar, Bookings: stays}, nil
}

// SetCalendar records the availability of one night.
func (s *Service) SetCalendar(ctx context.Context, id string, date time.Time, status, note string) (*CalendarEntry, error) {
	if _, err := s.get(ctx, id); err != nil {
		return nil, err
	}
	if status != CalendarBlocked && status != CalendarAvailable {
		return nil, apperr.BadRequest(CodeInvalidStatus, "status must be blocked or available")
	}
	e := &CalendarEntry{
		PropertyID: id,
		Date:       time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Status:     status,
		Note:       strings.TrimSpace(note),
	}
	if err := s.repo.UpsertCalendar(ctx, e); err != nil {
		return nil, apperr.Internal(err)
	}
	return e, nil
}

func (s *Service) ListForReview(ctx context.Context, filter string) ([]*Property, error) {
	if strings.TrimSpace(filter) == "" {
		filter = FilterPending
	}
	statuses, aerr := filterStatuses(filter)
	if aerr != nil {
		return nil, aerr
	}
	props, err := s.repo.ListByStatus(ctx, statuses)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return props, nil
}

func (s *Service) Approve(ctx context.Context, id string) (*Property, error) {
	return s.review(ctx, id, StatusApproved, "")
}

func (s *Service) Reject(ctx context.Context, id, reason string) (*Property, error) {
	return s.review(ctx, id, StatusRejected, strings.TrimSpace(reason))
}

func (s *Service) review(ctx context.Context, id string, to Status, reason string) (*Property, error) {
	p, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPending {
		return nil, apperr.Wrap(ErrNotReviewable, http.StatusConflict, CodeNotReviewable, "Property is not awaiting approval")
	}

	now := s.now()
	p.Status = to
	p.RejectionReason = reason
	p.ReviewedAt = &now
	p.UpdatedAt = now
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apperr.Internal(err)
	}

	delivered := s.notifier.SendToUser(p.OwnerID, realtime.Event{
		Type:    realtime.EventPropertyStatus,
		Payload: StatusChange{PropertyID: p.ID, Title: p.Title, Status: to, Reason: reason},
	})
	s.log.Info("property_reviewed", "property_id", p.ID, "status", to, "owner_notified", delivered)
	return p, nil
}

func (s *Service) get(ctx context.Context, id string) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrPropertyNotFound) {
		return nil, apperr.NotFound("Property")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return p, nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug, excludeID string) error {
	taken, err := s.repo.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return apperr.Internal(err)
	}
	if taken {
		return duplicateSlug()
	}
	return nil
}

// setModeration moves a publish submission into review and anything else
// back to draft.
func setModeration(p *Property, publish bool) {
	if publish {
		p.IsPublished = 1
		p.Status = StatusPending
	} else {
		p.IsPublished = 0
		p.Status = StatusDraft
	}
	p.RejectionReason = ""
	p.ReviewedAt = nil
}
