package payment

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/middleware"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/testutil"
)

func seeded(t *testing.T, userID int64, n int) *Service {
	t.Helper()
	s := NewService(NewRepository(testutil.NewDB(t, &Record{})))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, s.Record(context.Background(), &Record{
			UserID:      userID,
			Amount:      Pence(449.99),
			Description: "Silver plan",
			CreatedAt:   base.AddDate(0, 0, i),
		}))
	}
	require.NoError(t, s.Record(context.Background(), &Record{UserID: userID + 1, Amount: 100}))
	return s
}

func TestPence(t *testing.T) {
	assert.Equal(t, int64(44999), Pence(449.99))
	assert.Equal(t, int64(29900), Pence(299))
}

func TestRecord_Defaults(t *testing.T) {
	s := NewService(NewRepository(testutil.NewDB(t, &Record{})))
	rec := &Record{UserID: 1, Amount: 500, Currency: "GBP"}
	require.NoError(t, s.Record(context.Background(), rec))
	assert.Equal(t, "gbp", rec.Currency)
	assert.Equal(t, StatusSucceeded, rec.Status)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestHistory_Pagination(t *testing.T) {
	s := seeded(t, 7, 5)

	page, err := s.History(context.Background(), 7, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.Payments, 2)
	assert.Equal(t, Pagination{Total: 5, Limit: 2, Offset: 0, HasMore: true}, page.Pagination)
	assert.True(t, page.Payments[0].CreatedAt.After(page.Payments[1].CreatedAt))

	last, err := s.History(context.Background(), 7, 2, 4)
	require.NoError(t, err)
	assert.Len(t, last.Payments, 1)
	assert.False(t, last.Pagination.HasMore)

	none, err := s.History(context.Background(), 99, 50, 0)
	require.NoError(t, err)
	assert.NotNil(t, none.Payments)
	assert.Zero(t, none.Pagination.Total)
}

func TestHandler_History(t *testing.T) {
	s := seeded(t, 7, 3)
	r := testutil.Router()
	RegisterOwnerRoutes(r.Group("/api", middleware.JWTAuth(testutil.JWT())), NewHandler(s))

	w := testutil.Do(t, r, http.MethodGet, "/api/owner/payment-history?limit=abc&offset=-1", testutil.Token(t, 7, jwt.RoleOwner), nil)
	require.Equal(t, http.StatusOK, w.Code)
	h := testutil.Decode[History](t, w)
	assert.Len(t, h.Payments, 3)
	assert.Equal(t, DefaultLimit, h.Pagination.Limit)
	assert.Equal(t, 0, h.Pagination.Offset)
	assert.Equal(t, int64(44999), h.Payments[0].Amount)
}
