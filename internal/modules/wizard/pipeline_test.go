package wizard

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"groupstays/internal/client/propertyapi"
	"groupstays/internal/domain"
	"groupstays/internal/domain/listing"
	"groupstays/internal/domain/property"
	"groupstays/internal/pkg/apperr"
	"groupstays/internal/pkg/logger"
)

type MockPropertyAPI struct {
	mock.Mock
	images listing.ImageStore
}

func (m *MockPropertyAPI) CreateProperty(ctx context.Context, token string, p listing.Payload) (*property.Property, error) {
	args := m.Called(ctx, token, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyAPI) UpdateProperty(ctx context.Context, token, id string, p listing.Payload) (*property.Property, error) {
	args := m.Called(ctx, token, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyAPI) GetProperty(ctx context.Context, token, id string) (*property.Property, error) {
	args := m.Called(ctx, token, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyAPI) MarkPlanUsed(ctx context.Context, token, purchaseID, propertyID string) error {
	return m.Called(ctx, token, purchaseID, propertyID).Error(0)
}

func (m *MockPropertyAPI) ImageStore(token string) listing.ImageStore {
	if m.images != nil {
		return m.images
	}
	return urlStore{}
}

type urlStore struct{}

func (urlStore) StoreImage(_ context.Context, f listing.MediaFile) (string, error) {
	return "/static/uploads/" + f.Name, nil
}

type memQueue struct {
	mu    sync.Mutex
	marks []*domain.PlanMark
}

func (q *memQueue) Enqueue(_ context.Context, m *domain.PlanMark) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.marks = append(q.marks, m)
	return nil
}

var fixedNow = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

func newPipeline(api PropertyAPI, q PlanMarkQueue) *Pipeline {
	p := NewPipeline(api, q, logger.Discard())
	p.now = func() time.Time { return fixedNow }
	return p
}

func readyDraft(t *testing.T) *listing.Draft {
	t.Helper()
	d := listing.NewDraft()
	for name, v := range map[string]any{
		"title":        "The Oak Barn",
		"propertyType": "Barn Conversion",
		"sleepsMin":    8,
		"sleepsMax":    16,
		"address":      "1 Mill Lane",
		"town":         "Stow-on-the-Wold",
		"county":       "Gloucestershire",
		"basePrice":    950,
	} {
		require.NoError(t, d.UpdateField(name, v))
	}
	require.NoError(t, d.Media.IngestURL("https://cdn.example.com/oak.jpg"))
	return d
}

func sessionFor(d *listing.Draft) *Session {
	return newSession("sess-1", 7, d, fixedNow)
}

func TestSaveDraft_CreateThenUpdate(t *testing.T) {
	api := new(MockPropertyAPI)
	p := newPipeline(api, nil)
	s := sessionFor(listing.NewDraft())
	require.NoError(t, s.draft.UpdateField("title", "Half Finished"))

	api.On("CreateProperty", mock.Anything, "tok", mock.MatchedBy(func(pl listing.Payload) bool {
		return pl.IsPublished == 0 && pl.Status == listing.StatusDraft && pl.Title == "Half Finished"
	})).Return(&property.Property{ID: "prop-1"}, nil).Once()

	res, err := p.SaveDraft(context.Background(), s, "tok")
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "/owner/properties/prop-1/edit", res.Redirect)
	assert.Equal(t, "prop-1", s.propertyID)

	api.On("UpdateProperty", mock.Anything, "tok", "prop-1", mock.Anything).Return(&property.Property{ID: "prop-1"}, nil).Once()
	res, err = p.SaveDraft(context.Background(), s, "tok")
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Empty(t, res.Redirect)
	api.AssertExpectations(t)
}

func TestSaveDraft_FailureKeepsDraftAndSurfacesMessage(t *testing.T) {
	api := new(MockPropertyAPI)
	p := newPipeline(api, nil)
	s := sessionFor(listing.NewDraft())
	require.NoError(t, s.draft.UpdateField("title", "Dup"))

	api.On("CreateProperty", mock.Anything, "tok", mock.Anything).
		Return(nil, &propertyapi.APIError{Status: http.StatusConflict, Code: "DUPLICATE_SLUG", Message: "A property with this slug already exists"}).Once()
	_, err := p.SaveDraft(context.Background(), s, "tok")
	ae := apperr.As(err)
	assert.Equal(t, http.StatusConflict, ae.Status)
	assert.Equal(t, "A property with this slug already exists", ae.Message)
	assert.Empty(t, s.propertyID)
	assert.Equal(t, "Dup", s.draft.Title)

	api.On("CreateProperty", mock.Anything, "tok", mock.Anything).Return(nil, errors.New("dial tcp: refused")).Once()
	_, err = p.SaveDraft(context.Background(), s, "tok")
	ae = apperr.As(err)
	assert.Equal(t, msgSaveFailed, ae.Message)
	assert.Equal(t, http.StatusBadGateway, ae.Status)

	notices := s.nav.TakeNotices()
	require.Len(t, notices, 2)
	assert.Equal(t, listing.NoticeError, notices[1].Level)
}

func TestPublish_NoImagesNeverCallsAPI(t *testing.T) {
	api := new(MockPropertyAPI)
	p := newPipeline(api, nil)
	d := readyDraft(t)
	require.NoError(t, d.Media.Remove(0))
	s := sessionFor(d)

	_, err := p.Publish(context.Background(), s, "tok")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeValidation, apperr.As(err).Code)
	assert.Equal(t, listing.StepMedia, s.nav.Step())
	assert.Contains(t, s.draft.Errors(), "images")
	api.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublish_ValidationGoesToFirstFailingStep(t *testing.T) {
	api := new(MockPropertyAPI)
	p := newPipeline(api, nil)
	d := readyDraft(t)
	require.NoError(t, d.UpdateField("county", ""))
	require.NoError(t, d.UpdateField("basePrice", 0))
	s := sessionFor(d)
	s.nav.GoTo(listing.StepSEO)

	_, err := p.Publish(context.Background(), s, "tok")
	require.Error(t, err)
	assert.Equal(t, listing.StepLocation, s.nav.Step())
	errs := s.draft.Errors()
	assert.Contains(t, errs, "county")
	assert.Contains(t, errs, "basePrice")
	api.AssertNotCalled(t, "CreateProperty", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublish_AttachesPurchaseAndMarksPlanUsed(t *testing.T) {
	api := new(MockPropertyAPI)
	q := &memQueue{}
	p := newPipeline(api, q)
	s := sessionFor(readyDraft(t))
	s.purchase = &listing.Purchase{PurchaseID: "pur-1", PlanID: "silver", PaymentIntentID: "pi_9"}

	api.On("CreateProperty", mock.Anything, "tok", mock.MatchedBy(func(pl listing.Payload) bool {
		return pl.IsPublished == 1 &&
			pl.Status == listing.StatusPublished &&
			pl.PlanID == "silver" &&
			pl.PaymentStatus == listing.PaymentPaid &&
			pl.PaymentIntentID == "pi_9" &&
			pl.PlanExpiresAt != nil && pl.PlanExpiresAt.Equal(fixedNow.AddDate(1, 0, 0))
	})).Return(&property.Property{ID: "prop-9"}, nil).Once()
	api.On("MarkPlanUsed", mock.Anything, "tok", "pur-1", "prop-9").Return(nil).Once()

	res, err := p.Publish(context.Background(), s, "tok")
	require.NoError(t, err)
	assert.Equal(t, "/owner/dashboard?view=approvals", res.Redirect)
	assert.Equal(t, "prop-9", s.propertyID)
	assert.Empty(t, q.marks)
	api.AssertExpectations(t)
}

func TestPublish_PlanMarkFailureIsQueuedNotReturned(t *testing.T) {
	api := new(MockPropertyAPI)
	q := &memQueue{}
	p := newPipeline(api, q)
	s := sessionFor(readyDraft(t))
	s.propertyID = "prop-3"
	s.purchase = &listing.Purchase{PurchaseID: "pur-3", PlanID: "gold"}

	api.On("UpdateProperty", mock.Anything, "tok", "prop-3", mock.Anything).Return(&property.Property{ID: "prop-3"}, nil).Once()
	api.On("MarkPlanUsed", mock.Anything, "tok", "pur-3", "prop-3").Return(errors.New("timeout")).Once()

	res, err := p.Publish(context.Background(), s, "tok")
	require.NoError(t, err)
	assert.False(t, res.Created)
	require.Len(t, q.marks, 1)
	assert.Equal(t, "pur-3", q.marks[0].PurchaseID)
	assert.Equal(t, "prop-3", q.marks[0].PropertyID)
	assert.Equal(t, int64(7), q.marks[0].UserID)
}

func TestPublish_FailureFallbackMessage(t *testing.T) {
	api := new(MockPropertyAPI)
	p := newPipeline(api, nil)
	s := sessionFor(readyDraft(t))

	api.On("CreateProperty", mock.Anything, "tok", mock.Anything).
		Return(nil, &propertyapi.APIError{Status: http.StatusInternalServerError}).Once()

	_, err := p.Publish(context.Background(), s, "tok")
	assert.Equal(t, msgPublishFailed, apperr.As(err).Message)
	assert.Empty(t, s.propertyID)
	assert.Empty(t, s.redirect)
}

func TestBusyGuard(t *testing.T) {
	api := new(MockPropertyAPI)
	p := newPipeline(api, nil)
	s := sessionFor(readyDraft(t))

	release := make(chan struct{})
	started := make(chan struct{})
	api.On("CreateProperty", mock.Anything, "tok", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&property.Property{ID: "prop-1"}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := p.SaveDraft(context.Background(), s, "tok")
		done <- err
	}()
	<-started

	_, err := p.Publish(context.Background(), s, "tok")
	assert.Equal(t, http.StatusConflict, apperr.As(err).Status)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, CodeSessionBusy, apperr.As(s.edit(func() error { return nil })).Code)

	close(release)
	require.NoError(t, <-done)
	assert.NoError(t, s.edit(func() error { return nil }))
}
