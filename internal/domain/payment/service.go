package payment

import (
	"context"
	"math"
	"strings"
	"time"

	"groupstays/internal/pkg/apperr"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	Currency     = "gbp"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Pence converts a pound amount to the stored minor unit.
func Pence(pounds float64) int64 {
	return int64(math.Round(pounds * 100))
}

// Record stores a charge. Empty currency and status default to gbp and succeeded.
func (s *Service) Record(ctx context.Context, rec *Record) error {
	if rec.Currency == "" {
		rec.Currency = Currency
	}
	rec.Currency = strings.ToLower(rec.Currency)
	if rec.Status == "" {
		rec.Status = StatusSucceeded
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *Service) History(ctx context.Context, userID int64, limit, offset int) (*History, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if items == nil {
		items = []*Record{}
	}
	return &History{
		Payments: items,
		Pagination: Pagination{
			Total:   total,
			Limit:   limit,
			Offset:  offset,
			HasMore: int64(offset+limit) < total,
		},
	}, nil
}
