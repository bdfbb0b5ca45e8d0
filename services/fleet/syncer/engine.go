// Package syncer keeps the dispatcher's snapshot of the entity store current.
package syncer

import (
	"context"
	"fmt"
	"sync"
	"time"

	appctx "github.com/piresc/shuttlefleet/internal/pkg/context"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/pkg/retry"
	"github.com/piresc/shuttlefleet/internal/pkg/scheduler"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/atomic"
)

const (
	// DefaultRideFetchLimit caps the rides pulled per sync, most recently updated first
	DefaultRideFetchLimit = 200
	// DefaultFetchTimeout bounds a single pull of the four collections
	DefaultFetchTimeout = 10 * time.Second
)

// Engine pulls rides, vehicles, active alerts and on-duty drivers from the
// store and publishes them as an immutable Snapshot.
type Engine struct {
	store      *fleet.Store
	sched      scheduler.Scheduler
	retrier    *retry.Retrier
	fetchLimit int
	timeout    time.Duration

	snapshot     atomic.Pointer[models.Snapshot]
	syncing      atomic.Bool
	networkError atomic.Bool
	lastError    atomic.String

	mu          sync.Mutex
	retryHandle scheduler.Handle
	onExhausted func(error)
}

// NewEngine creates a sync engine with an empty snapshot
func NewEngine(cfg *models.Config, store *fleet.Store, sched scheduler.Scheduler, retrier *retry.Retrier) *Engine {
	limit := DefaultRideFetchLimit
	if cfg != nil && cfg.Simulation.RideFetchLimit > 0 {
		limit = cfg.Simulation.RideFetchLimit
	}
	if retrier == nil {
		retrier = retry.NewWithDefaults(nil)
	}

	e := &Engine{
		store:      store,
		sched:      sched,
		retrier:    retrier,
		fetchLimit: limit,
		timeout:    DefaultFetchTimeout,
	}
	e.snapshot.Store(&models.Snapshot{})
	return e
}

// OnExhausted registers fn to be called with the terminal NetworkError once
// every retry of a sync has failed
func (e *Engine) OnExhausted(fn func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onExhausted = fn
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (e *Engine) Snapshot() *models.Snapshot {
	return e.snapshot.Load()
}

// Apply replaces the snapshot with fn(current). fn must return a new value and
// may be called more than once if a concurrent sync lands in between.
func (e *Engine) Apply(fn func(*models.Snapshot) *models.Snapshot) *models.Snapshot {
	for {
		current := e.snapshot.Load()
		next := fn(current)
		if e.snapshot.CompareAndSwap(current, next) {
			return next
		}
	}
}

// NetworkError reports whether the last pull failed
func (e *Engine) NetworkError() bool {
	return e.networkError.Load()
}

// LastError returns the message of the last failed pull, empty after a success
func (e *Engine) LastError() string {
	return e.lastError.Load()
}

// Sync pulls the four collections and replaces the snapshot.
//
// Only one pull runs at a time; a concurrent non-forced call returns
// ErrSyncInProgress without fetching. On failure the whole pull is retried
// through the scheduler with exponential backoff until the retrier gives up,
// at which point a *fleet.NetworkError is recorded and returned.
func (e *Engine) Sync(ctx context.Context, retryCount int, force bool) (*models.Snapshot, error) {
	actor, ok := appctx.GetActor(ctx)
	if !ok {
		return nil, fleet.ErrNoActor
	}

	if !e.syncing.CompareAndSwap(false, true) {
		if !force {
			return nil, fleet.ErrSyncInProgress
		}
		logger.Debug("Forcing sync while another pull is in flight", logger.String("actor", actor.ID))
	} else {
		defer e.syncing.Store(false)
	}

	snap, err := e.fetch(ctx)
	if err != nil {
		return nil, e.fail(ctx, retryCount, err)
	}

	e.cancelRetry()
	now := e.sched.Now()
	snap.LastUpdate = &now
	e.snapshot.Store(snap)
	e.networkError.Store(false)
	e.lastError.Store("")

	logger.Debug("Snapshot synced",
		logger.String("actor", actor.ID),
		logger.Int("rides", len(snap.Rides)),
		logger.Int("vehicles", len(snap.Vehicles)),
		logger.Int("alerts", len(snap.Alerts)),
		logger.Int("drivers", len(snap.Drivers)))
	return snap, nil
}

// fetch runs the four reads in parallel; the first error cancels the rest
func (e *Engine) fetch(ctx context.Context) (*models.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	snap := &models.Snapshot{}
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()

	p.Go(func(ctx context.Context) error {
		rides, err := e.store.Rides.List(ctx, models.SortUpdatedDateDesc, e.fetchLimit)
		if err != nil {
			return fmt.Errorf("failed to fetch rides: %w", err)
		}
		snap.Rides = rides
		return nil
	})
	p.Go(func(ctx context.Context) error {
		vehicles, err := e.store.Vehicles.List(ctx, models.SortNone, 0)
		if err != nil {
			return fmt.Errorf("failed to fetch vehicles: %w", err)
		}
		snap.Vehicles = vehicles
		return nil
	})
	p.Go(func(ctx context.Context) error {
		alerts, err := e.store.Alerts.Filter(ctx, models.Query{models.Eq("status", models.AlertStatusActive)}, models.SortCreatedDateDesc, 0)
		if err != nil {
			return fmt.Errorf("failed to fetch alerts: %w", err)
		}
		snap.Alerts = alerts
		return nil
	})
	p.Go(func(ctx context.Context) error {
		statuses := make([]string, len(models.OnDutyDriverStatuses))
		for i, s := range models.OnDutyDriverStatuses {
			statuses[i] = string(s)
		}
		drivers, err := e.store.Drivers.Filter(ctx, models.Query{models.In("status", statuses...)}, models.SortNone, 0)
		if err != nil {
			return fmt.Errorf("failed to fetch drivers: %w", err)
		}
		snap.Drivers = drivers
		return nil
	})

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (e *Engine) fail(ctx context.Context, retryCount int, cause error) error {
	e.networkError.Store(true)
	e.lastError.Store(cause.Error())

	if e.retrier.ShouldRetry(retryCount, cause) {
		delay := e.retrier.Delay(retryCount)
		next := retryCount + 1
		retryCtx := context.WithoutCancel(ctx)

		logger.Warn("Sync failed, retrying",
			logger.Err(cause),
			logger.Int("retry", next),
			logger.Duration("delay", delay))

		e.mu.Lock()
		if e.retryHandle != nil {
			e.retryHandle.Cancel()
		}
		e.retryHandle = e.sched.After(delay, func() {
			if _, err := e.Sync(retryCtx, next, false); err != nil {
				logger.Debug("Sync retry did not complete", logger.Int("retry", next), logger.Err(err))
			}
		})
		e.mu.Unlock()
		return cause
	}

	netErr := &fleet.NetworkError{Attempts: retryCount + 1, Cause: cause}
	e.lastError.Store(netErr.Error())
	logger.Error("Sync failed after all retries",
		logger.Int("attempts", netErr.Attempts),
		logger.Err(cause))

	e.mu.Lock()
	e.retryHandle = nil
	hook := e.onExhausted
	e.mu.Unlock()
	if hook != nil {
		hook(netErr)
	}
	return netErr
}

func (e *Engine) cancelRetry() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.retryHandle != nil {
		e.retryHandle.Cancel()
		e.retryHandle = nil
	}
}

// Close cancels a pending retry
func (e *Engine) Close() {
	e.cancelRetry()
}
