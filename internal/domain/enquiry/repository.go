package enquiry

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Filter struct {
	Status     Status
	PropertyID string
}

type Repository interface {
	Create(ctx context.Context, e *Enquiry) error
	ListByOwner(ctx context.Context, ownerID int64, f Filter) ([]*Enquiry, error)
	CountByStatus(ctx context.Context, ownerID int64) (map[Status]int, error)
	GetForOwner(ctx context.Context, ownerID, id int64) (*Enquiry, error)
	UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Enquiry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ownedBy(ctx context.Context, ownerID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Enquiry{}).
		Joins("JOIN properties ON properties.id = enquiries.property_id").
		Where("properties.owner_id = ?", ownerID)
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int64, f Filter) ([]*Enquiry, error) {
	var out []*Enquiry
	q := r.ownedBy(ctx, ownerID).Select("enquiries.*, properties.title AS property_title")
	if f.Status != "" {
		q = q.Where("enquiries.status = ?", f.Status)
	}
	if f.PropertyID != "" {
		q = q.Where("enquiries.property_id = ?", f.PropertyID)
	}
	err := q.Order("enquiries.created_at DESC").Find(&out).Error
	return out, err
}

func (r *repository) CountByStatus(ctx context.Context, ownerID int64) (map[Status]int, error) {
	var rows []struct {
		Status Status
		Count  int
	}
	err := r.ownedBy(ctx, ownerID).
		Select("enquiries.status AS status, COUNT(*) AS count").
		Group("enquiries.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[Status]int, len(Statuses))
	for _, s := range Statuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *repository) GetForOwner(ctx context.Context, ownerID, id int64) (*Enquiry, error) {
	var e Enquiry
	err := r.ownedBy(ctx, ownerID).
		Select("enquiries.*, properties.title AS property_title").
		Where("enquiries.id = ?", id).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error {
	updates := map[string]any{"status": status, "updated_at": at}
	if status == StatusContacted {
		updates["responded_at"] = at
	}
	return r.db.WithContext(ctx).Model(&Enquiry{}).Where("id = ?", id).Updates(updates).Error
}
