package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*Booking, error)
	GetForOwner(ctx context.Context, ownerID, id int64) (*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error
	Delete(ctx context.Context, id int64) error
	Overlapping(ctx context.Context, propertyID string, from, to time.Time) ([]*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// ownedBy scopes a query to bookings on properties owned by ownerID.
func (r *repository) ownedBy(ctx context.Context, ownerID int64) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Select("bookings.*, properties.title AS property_title").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("properties.owner_id = ?", ownerID)
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int64, limit int) ([]*Booking, error) {
	var out []*Booking
	err := r.ownedBy(ctx, ownerID).
		Order("bookings.created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *repository) GetForOwner(ctx context.Context, ownerID, id int64) (*Booking, error) {
	var b Booking
	err := r.ownedBy(ctx, ownerID).Where("bookings.id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{"booking_status": status, "updated_at": at}).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Booking{}).Error
}

func (r *repository) Overlapping(ctx context.Context, propertyID string, from, to time.Time) ([]*Booking, error) {
	var out []*Booking
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND check_in < ? AND check_out > ?", propertyID, to, from).
		Order("check_in ASC").
		Find(&out).Error
	return out, err
}
