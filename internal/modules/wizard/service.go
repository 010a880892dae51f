package wizard

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/domain/listing"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

type Service struct {
	store    *Store
	pipeline *Pipeline
	api      PropertyAPI
	log      *logger.Logger
	now      func() time.Time
}

func NewService(store *Store, pipeline *Pipeline, api PropertyAPI, log *logger.Logger) *Service {
	return &Service{store: store, pipeline: pipeline, api: api, log: log, now: time.Now}
}

// Create opens a session. With a property id the draft is loaded from the
// API; with a purchase id the plan is attached on publish.
func (s *Service) Create(ctx context.Context, ownerID int64, token string, req *CreateSessionRequest) (*View, error) {
	draft := listing.NewDraft()
	if req.PropertyID != "" {
		prop, err := s.api.GetProperty(ctx, token, req.PropertyID)
		if err != nil {
			return nil, apperr.Wrap(err, propertyapi.StatusOf(err), CodeLoadFailed, propertyapi.Message(err, "Failed to load property"))
		}
		draft = listing.FromPayload(prop.Payload())
	}

	sess := newSession(uuid.NewString(), ownerID, draft, s.now())
	sess.propertyID = req.PropertyID
	if req.PurchaseID != "" {
		sess.purchase = &listing.Purchase{
			PurchaseID:      req.PurchaseID,
			PlanID:          req.PlanID,
			PaymentIntentID: req.PaymentIntentID,
		}
	}
	if req.Step > 0 {
		sess.nav.Resume(listing.Step(req.Step))
	}
	s.store.Put(sess)

	s.log.Info("wizard session created", "session_id", sess.ID, "owner_id", ownerID, "property_id", req.PropertyID)
	return sess.view(), nil
}

func (s *Service) Get(ownerID int64, id string) (*View, error) {
	sess, err := s.store.Get(ownerID, id)
	if err != nil {
		return nil, err
	}
	return sess.view(), nil
}

func (s *Service) Delete(ownerID int64, id string) error {
	return s.store.Delete(ownerID, id)
}

// fieldOrder applies sleepsMin before sleepsMax so a single patch can lower
// both bounds.
func fieldOrder(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := fieldRank(names[i]), fieldRank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

func fieldRank(name string) int {
	switch name {
	case "sleepsMin":
		return 0
	case "sleepsMax":
		return 1
	}
	return 2
}

// UpdateFields writes each field to the draft. Fields that fail are
// reported together; the others are still applied.
func (s *Service) UpdateFields(ownerID int64, id string, fields map[string]any) (*View, error) {
	sess, err := s.store.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	failed := map[string]any{}
	err = sess.edit(func() error {
		for _, name := range fieldOrder(fields) {
			if err := sess.draft.UpdateField(name, fields[name]); err != nil {
				failed[name] = err.Error()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, apperr.New(http.StatusBadRequest, CodeInvalidField, "Some fields could not be updated").WithDetails(failed)
	}
	return sess.view(), nil
}

func (s *Service) Next(ownerID int64, id string) (*View, error) {
	return s.navigate(ownerID, id, func(sess *Session) error {
		if err := sess.nav.Next(); err != nil && !errors.Is(err, listing.ErrStepInvalid) {
			return err
		}
		return nil
	})
}

func (s *Service) Previous(ownerID int64, id string) (*View, error) {
	return s.navigate(ownerID, id, func(sess *Session) error {
		sess.nav.Previous()
		return nil
	})
}

// Jump moves to step when the earlier steps pass. A refused jump is not an
// error; the view carries the warning notice.
func (s *Service) Jump(ownerID int64, id string, step int) (*View, error) {
	k := listing.Step(step)
	if !k.Valid() {
		return nil, apperr.BadRequest(CodeInvalidStep, "Step must be between 1 and 8")
	}
	return s.navigate(ownerID, id, func(sess *Session) error {
		if err := sess.nav.JumpTo(k); err != nil && !errors.Is(err, listing.ErrStepLocked) {
			return err
		}
		return nil
	})
}

func (s *Service) navigate(ownerID int64, id string, fn func(*Session) error) (*View, error) {
	sess, err := s.store.Get(ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := sess.edit(func() error { return fn(sess) }); err != nil {
		return nil, err
	}
	return sess.view(), nil
}

// AddMedia uploads files through the API and appends the accepted ones in
// input order.
func (s *Service) AddMedia(ctx context.Context, ownerID int64, token, id string, files []listing.MediaFile) (*View, error) {
	sess, err := s.store.Get(ownerID, id)
	if err != nil {
		return nil, err
	}

	// busy holds off other edits while the files upload outside the lock.
	if !sess.begin() {
		return nil, busyError()
	}
	sess.mu.Lock()
	media := listing.NewMedia(sess.draft.Media.Images()...)
	sess.mu.Unlock()

	report := media.Ingest(ctx, s.api.ImageStore(token), files)

	sess.mu.Lock()
	sess.draft.Media = media
	if len(report.Added) > 0 {
		sess.draft.ClearError("images")
	}
	for _, w := range report.Warnings {
		sess.nav.Notify(listing.NoticeWarning, w)
	}
	sess.busy = false
	sess.mu.Unlock()

	for _, r := range report.Rejected {
		s.log.Warn("image rejected", "session_id", id, "file", r.Name, "reason", r.Reason)
	}

	v := sess.view()
	v.Report = &report
	return v, nil
}

func (s *Service) AddMediaURL(ownerID int64, id, url string) (*View, error) {
	return s.mediaEdit(ownerID, id, func(m *listing.Media) error { return m.IngestURL(url) })
}

func (s *Service) ReorderMedia(ownerID int64, id string, index int, direction string) (*View, error) {
	dir := listing.Up
	if direction == "down" {
		dir = listing.Down
	}
	return s.mediaEdit(ownerID, id, func(m *listing.Media) error {
		m.Reorder(index, dir)
		return nil
	})
}

func (s *Service) PromoteHero(ownerID int64, id string, index int) (*View, error) {
	return s.mediaEdit(ownerID, id, func(m *listing.Media) error { return m.PromoteToHero(index) })
}

func (s *Service) RemoveMedia(ownerID int64, id string, index int) (*View, error) {
	return s.mediaEdit(ownerID, id, func(m *listing.Media) error { return m.Remove(index) })
}

func (s *Service) mediaEdit(ownerID int64, id string, fn func(*listing.Media) error) (*View, error) {
	sess, err := s.store.Get(ownerID, id)
	if err != nil {
		return nil, err
	}
	err = sess.edit(func() error {
		if err := fn(&sess.draft.Media); err != nil {
			return apperr.Wrap(err, http.StatusBadRequest, CodeInvalidMedia, err.Error())
		}
		sess.draft.ClearError("images")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess.view(), nil
}

func (s *Service) Save(ctx context.Context, ownerID int64, token, id string) (*View, error) {
	return s.submit(ctx, ownerID, id, func(sess *Session) (*Result, error) {
		return s.pipeline.SaveDraft(ctx, sess, token)
	})
}

func (s *Service) Publish(ctx context.Context, ownerID int64, token, id string) (*View, error) {
	return s.submit(ctx, ownerID, id, func(sess *Session) (*Result, error) {
		return s.pipeline.Publish(ctx, sess, token)
	})
}

// submit returns the session view alongside any failure so the caller can
// show the step and errors that blocked it.
func (s *Service) submit(_ context.Context, ownerID int64, id string, fn func(*Session) (*Result, error)) (*View, error) {
	sess, err := s.store.Get(ownerID, id)
	if err != nil {
		return nil, err
	}
	if _, err := fn(sess); err != nil {
		ae := apperr.As(err)
		if ae.Code != CodeSessionBusy {
			details := map[string]any{"session": sess.view()}
			for k, v := range ae.Details {
				details[k] = v
			}
			ae.Details = details
		}
		return nil, ae
	}
	return sess.view(), nil
}
