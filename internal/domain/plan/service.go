package plan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"groupstays/internal/domain/payment"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

// PaymentRecorder stores the charge behind a purchase.
type PaymentRecorder interface {
	Record(ctx context.Context, rec *payment.Record) error
}

type Service struct {
	repo     Repository
	payments PaymentRecorder
	log      *logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, payments PaymentRecorder, log *logger.Logger) *Service {
	return &Service{repo: repo, payments: payments, log: log, now: time.Now}
}

// SeedCatalog upserts the built-in tiers.
func (s *Service) SeedCatalog(ctx context.Context) error {
	return s.repo.UpsertPlans(ctx, Catalog())
}

func (s *Service) ListPlans(ctx context.Context) ([]*Plan, error) {
	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if plans == nil {
		plans = []*Plan{}
	}
	return plans, nil
}

func (s *Service) Purchases(ctx context.Context, userID int64) ([]*Purchase, error) {
	out, err := s.repo.ListPurchases(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if out == nil {
		out = []*Purchase{}
	}
	return out, nil
}

// Unused returns the newest unconsumed purchase, flagging one past expiry.
func (s *Service) Unused(ctx context.Context, userID int64) (*UnusedResponse, error) {
	p, err := s.repo.LatestUnused(ctx, userID)
	if errors.Is(err, ErrPurchaseNotFound) {
		return &UnusedResponse{}, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p.Expired(s.now()) {
		return &UnusedResponse{Expired: true}, nil
	}
	return &UnusedResponse{HasUnusedPlan: true, Purchase: p}, nil
}

// RecordPurchase stores a paid plan slot and its payment row. A repeated
// callback for the same payment intent returns the existing purchase.
func (s *Service) RecordPurchase(ctx context.Context, req *RecordPurchaseRequest) (*Purchase, error) {
	pl, err := s.repo.GetPlan(ctx, req.PlanID)
	if errors.Is(err, ErrPlanNotFound) {
		return nil, apperr.BadRequest(CodeInvalidPlan, "Invalid plan")
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	intent := strings.TrimSpace(req.PaymentIntentID)
	if intent != "" {
		existing, err := s.repo.FindByPaymentIntent(ctx, intent)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrPurchaseNotFound) {
			return nil, apperr.Internal(err)
		}
	}

	amount := pl.PriceYearly
	if req.Amount != nil {
		amount = *req.Amount
	}
	now := s.now().UTC()
	p := &Purchase{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		PlanID:          pl.ID,
		Amount:          amount,
		PaymentIntentID: intent,
		PurchasedAt:     now,
		ExpiresAt:       now.AddDate(1, 0, 0),
	}
	if err := s.repo.CreatePurchase(ctx, p); err != nil {
		return nil, apperr.Internal(err)
	}

	if err := s.payments.Record(ctx, &payment.Record{
		UserID:          req.UserID,
		Amount:          amount,
		Description:     fmt.Sprintf("%s (yearly)", pl.Name),
		PaymentIntentID: intent,
		PlanID:          string(pl.ID),
		CreatedAt:       now,
	}); err != nil {
		s.log.Warn("payment record failed", "purchase_id", p.ID, "error", err)
	}

	s.log.Info("plan purchase recorded", "purchase_id", p.ID, "user_id", p.UserID, "plan_id", p.PlanID)
	return p, nil
}

// MarkUsed binds a purchase to a property. Marking the same property twice
// succeeds without change.
func (s *Service) MarkUsed(ctx context.Context, userID int64, purchaseID, propertyID string) (*Purchase, error) {
	purchaseID = strings.TrimSpace(purchaseID)
	propertyID = strings.TrimSpace(propertyID)
	if purchaseID == "" || propertyID == "" {
		return nil, apperr.BadRequest(CodeMissingIDs, "Purchase ID and Property ID are required")
	}

	changed, err := s.repo.MarkUsed(ctx, purchaseID, userID, propertyID, s.now().UTC())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	p, err := s.repo.GetPurchase(ctx, purchaseID)
	if errors.Is(err, ErrPurchaseNotFound) {
		return nil, noUnused()
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if p.UserID != userID {
		return nil, noUnused()
	}
	if !changed && (p.PropertyID == nil || *p.PropertyID != propertyID) {
		return nil, noUnused()
	}

	if changed {
		s.log.Info("plan purchase used", "purchase_id", purchaseID, "property_id", propertyID, "user_id", userID)
	}
	return p, nil
}

func noUnused() *apperr.Error {
	return apperr.New(http.StatusNotFound, CodeNoUnusedPurchase, "No unused plan purchase found")
}
