package plan

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListPlans(ctx context.Context) ([]*Plan, error)
	GetPlan(ctx context.Context, id ID) (*Plan, error)
	UpsertPlans(ctx context.Context, plans []*Plan) error

	CreatePurchase(ctx context.Context, p *Purchase) error
	GetPurchase(ctx context.Context, id string) (*Purchase, error)
	FindByPaymentIntent(ctx context.Context, intentID string) (*Purchase, error)
	ListPurchases(ctx context.Context, userID int64) ([]*Purchase, error)
	LatestUnused(ctx context.Context, userID int64) (*Purchase, error)
	// MarkUsed consumes an unused purchase owned by userID. It reports
	// whether a row changed.
	MarkUsed(ctx context.Context, id string, userID int64, propertyID string, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPlans(ctx context.Context) ([]*Plan, error) {
	var plans []*Plan
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("sort_order ASC").Find(&plans).Error
	return plans, err
}

func (r *repository) GetPlan(ctx context.Context, id ID) (*Plan, error) {
	var p Plan
	err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpsertPlans(ctx context.Context, plans []*Plan) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price_yearly", "price_monthly", "features", "sort_order", "is_active"}),
		}).
		Create(plans).Error
}

func (r *repository) CreatePurchase(ctx context.Context, p *Purchase) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetPurchase(ctx context.Context, id string) (*Purchase, error) {
	var p Purchase
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByPaymentIntent(ctx context.Context, intentID string) (*Purchase, error) {
	var p Purchase
	err := r.db.WithContext(ctx).Where("payment_intent_id = ?", intentID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPurchases(ctx context.Context, userID int64) ([]*Purchase, error) {
	var out []*Purchase
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("purchased_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) LatestUnused(ctx context.Context, userID int64) (*Purchase, error) {
	var p Purchase
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND used = ?", userID, false).
		Order("purchased_at DESC").
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) MarkUsed(ctx context.Context, id string, userID int64, propertyID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Purchase{}).
		Where("id = ? AND user_id = ? AND used = ?", id, userID, false).
		Updates(map[string]any{
			"used":        true,
			"property_id": propertyID,
			"used_at":     at,
		})
	return res.RowsAffected > 0, res.Error
}
