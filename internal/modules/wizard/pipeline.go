package wizard

import (
	"context"
	"fmt"
	"time"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/domain"
	"groupstays/internal/domain/listing"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

const approvalsRedirect = "/owner/dashboard?view=approvals"

// Result describes a successful save or publish.
type Result struct {
	PropertyID string `json:"propertyId"`
	Created    bool   `json:"created"`
	Redirect   string `json:"redirect,omitempty"`
}

// Pipeline sends drafts to the Property API.
type Pipeline struct {
	api   PropertyAPI
	queue PlanMarkQueue
	log   *logger.Logger
	now   func() time.Time
}

// NewPipeline builds a pipeline. queue may be nil, in which case failed
// plan marks are only logged.
func NewPipeline(api PropertyAPI, queue PlanMarkQueue, log *logger.Logger) *Pipeline {
	return &Pipeline{api: api, queue: queue, log: log, now: time.Now}
}

// SaveDraft stores the draft without validation. The first save creates the
// property and binds its id to the session.
func (p *Pipeline) SaveDraft(ctx context.Context, s *Session, token string) (*Result, error) {
	if !s.begin() {
		return nil, busyError()
	}
	defer s.end()

	s.mu.Lock()
	payload := listing.BuildPayload(s.draft, false)
	id := s.propertyID
	s.mu.Unlock()

	savedID, created, err := p.send(ctx, token, id, payload)
	if err != nil {
		p.log.Warn("save draft failed", "session_id", s.ID, "property_id", id, "error", err)
		return nil, p.failure(s, err, CodeSaveFailed, msgSaveFailed)
	}

	res := &Result{PropertyID: savedID, Created: created}
	if created {
		res.Redirect = fmt.Sprintf("/owner/properties/%s/edit", savedID)
	}

	s.mu.Lock()
	s.propertyID = savedID
	s.redirect = res.Redirect
	s.nav.Notify(listing.NoticeSuccess, "Draft saved")
	s.mu.Unlock()

	return res, nil
}

// Publish validates every step, submits the listing for approval and then
// consumes the bound plan purchase. Validation failures move the wizard to
// the step that needs attention and never reach the API.
func (p *Pipeline) Publish(ctx context.Context, s *Session, token string) (*Result, error) {
	if !s.begin() {
		return nil, busyError()
	}
	defer s.end()

	s.mu.Lock()
	if s.draft.Media.Len() == 0 {
		s.draft.SetErrors(map[string]string{"images": msgNeedImage})
		s.nav.GoTo(listing.StepMedia)
		s.nav.Notify(listing.NoticeError, msgNeedImage)
		s.mu.Unlock()
		return nil, apperr.Validation(msgNeedImage, map[string]any{"images": msgNeedImage})
	}
	if first, errs := listing.ValidateAll(s.draft); len(errs) > 0 {
		s.draft.ClearErrors()
		s.draft.SetErrors(errs)
		s.nav.GoTo(first)
		s.nav.Notify(listing.NoticeError, "Please fix the highlighted fields before publishing")
		s.mu.Unlock()
		details := make(map[string]any, len(errs))
		for k, v := range errs {
			details[k] = v
		}
		return nil, apperr.Validation("Please fix the highlighted fields before publishing", details)
	}

	payload := listing.BuildPayload(s.draft, true)
	var purchase *listing.Purchase
	if s.purchase != nil {
		pur := *s.purchase
		purchase = &pur
		payload.AttachPurchase(pur, p.now())
	}
	id := s.propertyID
	s.mu.Unlock()

	savedID, created, err := p.send(ctx, token, id, payload)
	if err != nil {
		p.log.Warn("publish failed", "session_id", s.ID, "property_id", id, "error", err)
		return nil, p.failure(s, err, CodePublishFailed, msgPublishFailed)
	}

	s.mu.Lock()
	s.propertyID = savedID
	s.redirect = approvalsRedirect
	s.draft.ClearErrors()
	s.nav.Notify(listing.NoticeSuccess, "Property submitted for approval")
	s.mu.Unlock()

	if purchase != nil {
		p.markPlanUsed(ctx, s.OwnerID, token, purchase.PurchaseID, savedID)
	}

	return &Result{PropertyID: savedID, Created: created, Redirect: approvalsRedirect}, nil
}

func (p *Pipeline) send(ctx context.Context, token, id string, payload listing.Payload) (string, bool, error) {
	if id == "" {
		prop, err := p.api.CreateProperty(ctx, token, payload)
		if err != nil {
			return "", false, err
		}
		return prop.ID, true, nil
	}
	if _, err := p.api.UpdateProperty(ctx, token, id, payload); err != nil {
		return "", false, err
	}
	return id, false, nil
}

// failure leaves the draft as it was and surfaces the API's message.
func (p *Pipeline) failure(s *Session, err error, code, fallback string) *apperr.Error {
	msg := propertyapi.Message(err, fallback)
	s.mu.Lock()
	s.nav.Notify(listing.NoticeError, msg)
	s.mu.Unlock()
	return apperr.Wrap(err, propertyapi.StatusOf(err), code, msg)
}

// markPlanUsed is best effort: a failure is queued for the retry task and
// never fails the publish.
func (p *Pipeline) markPlanUsed(ctx context.Context, ownerID int64, token, purchaseID, propertyID string) {
	err := p.api.MarkPlanUsed(ctx, token, purchaseID, propertyID)
	if err == nil {
		return
	}
	p.log.Warn("mark plan used failed", "purchase_id", purchaseID, "property_id", propertyID, "error", err)
	if p.queue == nil {
		return
	}
	if qerr := p.queue.Enqueue(context.WithoutCancel(ctx), &domain.PlanMark{
		PurchaseID: purchaseID,
		PropertyID: propertyID,
		UserID:     ownerID,
		LastError:  err.Error(),
	}); qerr != nil {
		p.log.Error("enqueue plan mark failed", "purchase_id", purchaseID, "error", qerr)
	}
}
