package property

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	Update(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	Delete(ctx context.Context, id string) error
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64, statuses []Status) ([]*Property, error)
	ListByStatus(ctx context.Context, statuses []Status) ([]*Property, error)
	CalendarBetween(ctx context.Context, propertyID string, from, to time.Time) ([]CalendarEntry, error)
	UpsertCalendar(ctx context.Context, e *CalendarEntry) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Property, error) {
	var p Property
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&CalendarEntry{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Property{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyNotFound
		}
		return nil
	})
}

func (r *repository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&Property{}).Where("slug = ?", slug)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int64, statuses []Status) ([]*Property, error) {
	var out []*Property
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("updated_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) ListByStatus(ctx context.Context, statuses []Status) ([]*Property, error) {
	var out []*Property
	q := r.db.WithContext(ctx)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	err := q.Order("updated_at ASC").Find(&out).Error
	return out, err
}

func (r *repository) CalendarBetween(ctx context.Context, propertyID string, from, to time.Time) ([]CalendarEntry, error) {
	var out []CalendarEntry
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND date >= ? AND date < ?", propertyID, from, to).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) UpsertCalendar(ctx context.Context, e *CalendarEntry) error {
	var existing CalendarEntry
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND date = ?", e.PropertyID, e.Date).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.db.WithContext(ctx).Create(e).Error
	case err != nil:
		return err
	}
	e.ID = existing.ID
	return r.db.WithContext(ctx).Save(e).Error
}
