package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"groupstays/internal/domain"
)

// PlanMarkRepository stores the mark-plan-used retry queue.
type PlanMarkRepository struct {
	db *gorm.DB
}

func NewPlanMarkRepository(db *gorm.DB) *PlanMarkRepository {
	return &PlanMarkRepository{db: db}
}

// Enqueue adds a pending mark. A second enqueue for the same purchase and
// property is a no-op.
func (r *PlanMarkRepository) Enqueue(ctx context.Context, m *domain.PlanMark) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m).Error
}

// Due returns pending entries that still have attempts left, oldest first.
func (r *PlanMarkRepository) Due(ctx context.Context, maxAttempts, limit int) ([]*domain.PlanMark, error) {
	var out []*domain.PlanMark
	err := r.db.WithContext(ctx).
		Where("done_at IS NULL AND attempts < ?", maxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *PlanMarkRepository) MarkDone(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.PlanMark{}).
		Where("id = ? AND done_at IS NULL", id).
		Updates(map[string]any{"done_at": now, "updated_at": now}).Error
}

func (r *PlanMarkRepository) RecordFailure(ctx context.Context, id int64, reason string) error {
	return r.db.WithContext(ctx).Model(&domain.PlanMark{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
			"updated_at": time.Now().UTC(),
		}).Error
}

// DeleteDone removes completed entries older than before.
func (r *PlanMarkRepository) DeleteDone(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("done_at IS NOT NULL AND done_at < ?", before).
		Delete(&domain.PlanMark{})
	return res.RowsAffected, res.Error
}
