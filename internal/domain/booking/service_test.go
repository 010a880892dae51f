package booking

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/domain/property"
	"groupstays/internal/domain/realtime"
	"groupstays/internal/middleware"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/jwt"
	"groupstays/internal/pkg/logger"
	"groupstays/internal/testutil"
)

type countingNotifier struct{ events []realtime.Event }

func (n *countingNotifier) SendToUser(_ int64, ev realtime.Event) bool {
	n.events = append(n.events, ev)
	return true
}

type fixture struct {
	svc      *Service
	notifier *countingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &property.Property{}, &Booking{})
	props := property.NewRepository(db)
	for id, owner := range map[string]int64{"p-oak": 7, "p-keep": 7, "p-mill": 9} {
		require.NoError(t, props.Create(context.Background(), &property.Property{
			ID: id, OwnerID: owner, Title: "Title " + id, Slug: id, Status: property.StatusApproved,
		}))
	}
	n := &countingNotifier{}
	return &fixture{svc: NewService(NewRepository(db), n, logger.Discard()), notifier: n}
}

func (f *fixture) book(t *testing.T, propertyID string, in time.Time, nights int, status Status) *Booking {
	t.Helper()
	b := &Booking{
		PropertyID:    propertyID,
		GuestName:     "Guest",
		GuestEmail:    "guest@example.com",
		CheckIn:       in,
		CheckOut:      in.AddDate(0, 0, nights),
		Guests:        10,
		TotalPrice:    1500,
		BookingStatus: status,
	}
	require.NoError(t, f.svc.Create(context.Background(), b))
	return b
}

var june = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func TestListForOwner_NewestFirstWithLimit(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 4; i++ {
		f.book(t, "p-oak", june.AddDate(0, 0, i*7), 3, StatusConfirmed)
		time.Sleep(2 * time.Millisecond)
	}
	f.book(t, "p-mill", june, 3, StatusConfirmed)

	out, err := f.svc.ListForOwner(context.Background(), 7, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, !out[0].CreatedAt.Before(out[1].CreatedAt))
	assert.Equal(t, "Title p-oak", out[0].PropertyTitle)

	none, err := f.svc.ListForOwner(context.Background(), 42, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "p-oak", june, 3, StatusPending)
	other := f.book(t, "p-mill", june, 3, StatusPending)

	updated, err := f.svc.UpdateStatus(context.Background(), 7, b.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.BookingStatus)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, realtime.EventBookingStatus, f.notifier.events[0].Type)

	_, err = f.svc.UpdateStatus(context.Background(), 7, other.ID, StatusConfirmed)
	assert.Equal(t, apperr.CodeNotFound, apperr.As(err).Code)

	_, err = f.svc.UpdateStatus(context.Background(), 7, b.ID, "archived")
	assert.Equal(t, CodeInvalidStatus, apperr.As(err).Code)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "p-keep", june, 2, StatusConfirmed)

	assert.Equal(t, apperr.CodeNotFound, apperr.As(f.svc.Delete(context.Background(), 9, b.ID)).Code)
	require.NoError(t, f.svc.Delete(context.Background(), 7, b.ID))
	assert.Equal(t, apperr.CodeNotFound, apperr.As(f.svc.Delete(context.Background(), 7, b.ID)).Code)
}

func TestStaysBetween_OverlapAndBlockingOnly(t *testing.T) {
	f := newFixture(t)
	f.book(t, "p-oak", june.AddDate(0, 0, -2), 4, StatusConfirmed)
	f.book(t, "p-oak", june.AddDate(0, 0, 10), 3, StatusPending)
	f.book(t, "p-oak", june.AddDate(0, 0, 20), 3, StatusCancelled)
	f.book(t, "p-oak", june.AddDate(0, 2, 0), 3, StatusConfirmed)
	f.book(t, "p-oak", june.AddDate(0, 0, -10), 3, StatusConfirmed)

	stays, err := f.svc.StaysBetween(context.Background(), "p-oak", june, june.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, stays, 2)
	assert.Equal(t, june.AddDate(0, 0, -2).Unix(), stays[0].CheckIn.Unix())
	assert.Equal(t, "pending", stays[1].Status)
}

func TestHandler(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, "p-oak", june, 3, StatusPending)

	r := testutil.Router()
	RegisterOwnerRoutes(r.Group("/api", middleware.JWTAuth(testutil.JWT())), NewHandler(f.svc))
	token := testutil.Token(t, 7, jwt.RoleOwner)

	w := testutil.Do(t, r, http.MethodGet, "/api/owner/bookings?limit=500", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, testutil.Decode[[]Booking](t, w), 1)

	path := fmt.Sprintf("/api/owner/bookings/%d", b.ID)
	w = testutil.Do(t, r, http.MethodPatch, path, token, gin.H{"bookingStatus": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, StatusConfirmed, testutil.Decode[Booking](t, w).BookingStatus)

	w = testutil.Do(t, r, http.MethodPatch, "/api/owner/bookings/abc", token, gin.H{"bookingStatus": "confirmed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.Do(t, r, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
