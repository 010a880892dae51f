package task

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupstays/internal/domain"
	"groupstays/internal/pkg/logger"
	"groupstays/internal/repository"
	"groupstays/internal/testutil"
)

type fakeMarker struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeMarker) InternalMarkPlanUsed(_ context.Context, token, purchaseID, propertyID string, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, purchaseID+"/"+propertyID)
	if token != "internal-secret" {
		return errors.New("bad token")
	}
	if f.fail[purchaseID] {
		return errors.New("service unavailable")
	}
	return nil
}

func setupTask(t *testing.T, marker PlanMarker, maxAttempts int) (*PlanMarkTask, *repository.PlanMarkRepository) {
	t.Helper()
	repo := repository.NewPlanMarkRepository(testutil.NewDB(t, &domain.PlanMark{}))
	return NewPlanMarkTask(repo, marker, "internal-secret", "@every 1h", maxAttempts, logger.Discard()), repo
}

func TestRunOnce_MarksAndRecordsFailures(t *testing.T) {
	marker := &fakeMarker{fail: map[string]bool{"pur-2": true}}
	task, repo := setupTask(t, marker, 2)
	ctx := context.Background()

	require.NoError(t, repo.Enqueue(ctx, &domain.PlanMark{PurchaseID: "pur-1", PropertyID: "prop-1", UserID: 7}))
	require.NoError(t, repo.Enqueue(ctx, &domain.PlanMark{PurchaseID: "pur-2", PropertyID: "prop-2", UserID: 8}))

	stats, err := task.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Done)
	assert.Equal(t, 1, stats.Failed)

	due, err := repo.Due(ctx, 2, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "pur-2", due[0].PurchaseID)
	assert.Equal(t, 1, due[0].Attempts)
	assert.Equal(t, "service unavailable", due[0].LastError)

	stats, err = task.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)

	stats, err = task.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Done+stats.Failed, "exhausted entries are not retried")
	assert.Len(t, marker.calls, 3)
}

func TestRunOnce_PrunesOldCompleted(t *testing.T) {
	task, repo := setupTask(t, &fakeMarker{}, 3)
	ctx := context.Background()
	require.NoError(t, repo.Enqueue(ctx, &domain.PlanMark{PurchaseID: "pur-1", PropertyID: "prop-1", UserID: 7}))

	_, err := task.RunOnce(ctx)
	require.NoError(t, err)

	task.now = func() time.Time { return time.Now().Add(planMarkRetention + time.Hour) }
	stats, err := task.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Cleaned)
}

func TestRunOnce_RequiresToken(t *testing.T) {
	task, _ := setupTask(t, &fakeMarker{}, 3)
	task.token = ""
	_, err := task.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestStart_InvalidSchedule(t *testing.T) {
	task, _ := setupTask(t, &fakeMarker{}, 3)
	task.schedule = "not a schedule"
	assert.Error(t, task.Start())
	task.Stop()
}

// flakyStore fails MarkDone for one purchase and records the context state
// every other update saw.
type flakyStore struct {
	*repository.PlanMarkRepository
	failPurchase string
	ids          map[int64]string

	mu       sync.Mutex
	canceled int
}

func (s *flakyStore) MarkDone(ctx context.Context, id int64) error {
	if s.ids[id] == s.failPurchase {
		return errors.New("database is locked")
	}
	s.mu.Lock()
	if ctx.Err() != nil {
		s.canceled++
	}
	s.mu.Unlock()
	return s.PlanMarkRepository.MarkDone(ctx, id)
}

func TestRunOnce_StoreErrorDoesNotStopBatch(t *testing.T) {
	repo := repository.NewPlanMarkRepository(testutil.NewDB(t, &domain.PlanMark{}))
	ctx := context.Background()
	store := &flakyStore{PlanMarkRepository: repo, failPurchase: "pur-1", ids: map[int64]string{}}
	for _, pur := range []string{"pur-1", "pur-2", "pur-3", "pur-4", "pur-5", "pur-6"} {
		m := &domain.PlanMark{PurchaseID: pur, PropertyID: "prop-" + pur, UserID: 7}
		require.NoError(t, repo.Enqueue(ctx, m))
		store.ids[m.ID] = pur
	}

	marker := &fakeMarker{}
	task := NewPlanMarkTask(store, marker, "internal-secret", "@every 1h", 3, logger.Discard())

	stats, err := task.RunOnce(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.Equal(t, 6, stats.Done)
	assert.Len(t, marker.calls, 6)
	assert.Zero(t, store.canceled)

	due, err := repo.Due(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "pur-1", due[0].PurchaseID)
}
