package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"groupstays/internal/domain"
	"groupstays/internal/pkg/logger"
)

const (
	planMarkBatch       = 100
	planMarkConcurrency = 4
	planMarkTimeout     = 2 * time.Minute
	planMarkRetention   = 30 * 24 * time.Hour
)

// PlanMarkStore is the retry queue written by the wizard when marking a
// purchase as used fails after publish.
type PlanMarkStore interface {
	Due(ctx context.Context, maxAttempts, limit int) ([]*domain.PlanMark, error)
	MarkDone(ctx context.Context, id int64) error
	RecordFailure(ctx context.Context, id int64, reason string) error
	DeleteDone(ctx context.Context, before time.Time) (int64, error)
}

// PlanMarker calls the API's internal mark-used endpoint.
type PlanMarker interface {
	InternalMarkPlanUsed(ctx context.Context, internalToken, purchaseID, propertyID string, userID int64) error
}

// RunStats summarises one pass over the queue.
type RunStats struct {
	Done    int
	Failed  int
	Cleaned int64
}

type PlanMarkTask struct {
	store       PlanMarkStore
	marker      PlanMarker
	token       string
	schedule    string
	maxAttempts int
	log         *logger.Logger
	Cron        *cron.Cron

	running atomic.Bool
	now     func() time.Time
}

func NewPlanMarkTask(store PlanMarkStore, marker PlanMarker, internalToken, schedule string, maxAttempts int, log *logger.Logger) *PlanMarkTask {
	return &PlanMarkTask{
		store:       store,
		marker:      marker,
		token:       internalToken,
		schedule:    schedule,
		maxAttempts: maxAttempts,
		log:         log,
		Cron:        cron.New(cron.WithSeconds()),
		now:         time.Now,
	}
}

// Start runs one pass immediately and then on schedule.
func (t *PlanMarkTask) Start() error {
	if _, err := t.Cron.AddFunc(t.schedule, t.tick); err != nil {
		return fmt.Errorf("schedule plan mark retry %q: %w", t.schedule, err)
	}
	go t.tick()
	t.Cron.Start()
	t.log.Info("plan mark retry task started", "schedule", t.schedule, "max_attempts", t.maxAttempts)
	return nil
}

// Stop halts the scheduler and waits for a running pass.
func (t *PlanMarkTask) Stop() {
	<-t.Cron.Stop().Done()
}

func (t *PlanMarkTask) tick() {
	if !t.running.CompareAndSwap(false, true) {
		t.log.Debug("plan mark retry still running, skipping tick")
		return
	}
	defer t.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), planMarkTimeout)
	defer cancel()

	stats, err := t.RunOnce(ctx)
	if err != nil {
		t.log.Error("plan mark retry failed", "error", err)
		return
	}
	if stats.Done+stats.Failed > 0 || stats.Cleaned > 0 {
		t.log.Info("plan mark retry pass", "done", stats.Done, "failed", stats.Failed, "cleaned", stats.Cleaned)
	}
}

// RunOnce retries every due entry and prunes old completed ones.
func (t *PlanMarkTask) RunOnce(ctx context.Context) (RunStats, error) {
	var stats RunStats
	if t.token == "" {
		return stats, fmt.Errorf("internal api token is not configured")
	}

	due, err := t.store.Due(ctx, t.maxAttempts, planMarkBatch)
	if err != nil {
		return stats, fmt.Errorf("load due plan marks: %w", err)
	}

	// A failed queue update is collected and the rest of the batch carries on.
	var (
		done, failed atomic.Int64
		mu           sync.Mutex
		storeErrs    []error
	)
	record := func(err error) {
		if err != nil {
			mu.Lock()
			storeErrs = append(storeErrs, err)
			mu.Unlock()
		}
	}

	var g errgroup.Group
	g.SetLimit(planMarkConcurrency)
	for _, m := range due {
		g.Go(func() error {
			if err := t.marker.InternalMarkPlanUsed(ctx, t.token, m.PurchaseID, m.PropertyID, m.UserID); err != nil {
				failed.Add(1)
				if m.Attempts+1 >= t.maxAttempts {
					t.log.Error("plan mark abandoned", "purchase_id", m.PurchaseID, "property_id", m.PropertyID, "attempts", m.Attempts+1, "error", err)
				}
				record(t.store.RecordFailure(ctx, m.ID, err.Error()))
				return nil
			}
			done.Add(1)
			record(t.store.MarkDone(ctx, m.ID))
			return nil
		})
	}
	_ = g.Wait()
	stats.Done = int(done.Load())
	stats.Failed = int(failed.Load())

	cleaned, err := t.store.DeleteDone(ctx, t.now().UTC().Add(-planMarkRetention))
	if err != nil {
		storeErrs = append(storeErrs, fmt.Errorf("prune plan marks: %w", err))
	}
	stats.Cleaned = cleaned
	if len(storeErrs) > 0 {
		return stats, fmt.Errorf("update plan marks: %w", errors.Join(storeErrs...))
	}
	return stats, nil
}
