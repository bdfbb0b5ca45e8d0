package syncer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	appctx "github.com/piresc/shuttlefleet/internal/pkg/context"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/pkg/retry"
	"github.com/piresc/shuttlefleet/internal/pkg/scheduler"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/piresc/shuttlefleet/services/fleet/mocks"
	"github.com/piresc/shuttlefleet/services/fleet/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var syncStart = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func actorCtx() context.Context {
	return appctx.WithActor(context.Background(), appctx.Actor{ID: "dispatcher-1", Role: "dispatcher"})
}

func newTestEngine(store *fleet.Store, sched scheduler.Scheduler) *Engine {
	return NewEngine(&models.Config{}, store, sched, retry.NewWithDefaults(logger.NewNopLogger()))
}

func seedStore(t *testing.T) *fleet.Store {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()

	_, err := store.Rides.Create(ctx, models.Ride{ID: "r1", Status: models.RideStatusPending})
	require.NoError(t, err)
	_, err = store.Vehicles.Create(ctx, models.Vehicle{ID: "v1", ShuttleNumber: "V1", Status: models.VehicleStatusAvailable})
	require.NoError(t, err)
	_, err = store.Alerts.Create(ctx, models.EmergencyAlert{ID: "a1", Status: models.AlertStatusActive})
	require.NoError(t, err)
	_, err = store.Alerts.Create(ctx, models.EmergencyAlert{ID: "a2", Status: models.AlertStatusResolved})
	require.NoError(t, err)
	for id, status := range map[string]models.DriverStatus{
		"d1": models.DriverStatusSignedIn,
		"d2": models.DriverStatusOnBreak,
		"d3": models.DriverStatusSignedOut,
	} {
		_, err = store.Drivers.Create(ctx, models.Driver{ID: id, Status: status})
		require.NoError(t, err)
	}
	return store
}

func TestEngine_Sync_Success(t *testing.T) {
	// Arrange
	sched := scheduler.NewManual(syncStart)
	engine := newTestEngine(seedStore(t), sched)

	// Act
	snap, err := engine.Sync(actorCtx(), 0, false)

	// Assert
	require.NoError(t, err)
	assert.Same(t, snap, engine.Snapshot())
	require.Len(t, snap.Rides, 1)
	require.Len(t, snap.Vehicles, 1)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "a1", snap.Alerts[0].ID)
	assert.Len(t, snap.Drivers, 2)
	for _, d := range snap.Drivers {
		assert.NotEqual(t, models.DriverStatusSignedOut, d.Status)
	}
	require.NotNil(t, snap.LastUpdate)
	assert.True(t, syncStart.Equal(*snap.LastUpdate))
	assert.False(t, engine.NetworkError())
	assert.Empty(t, engine.LastError())
}

func TestEngine_Sync_NoActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// any fetch would fail the test as an unexpected call
	store := &fleet.Store{
		Rides:    mocks.NewMockEntityRepo[models.Ride](ctrl),
		Vehicles: mocks.NewMockEntityRepo[models.Vehicle](ctrl),
		Drivers:  mocks.NewMockEntityRepo[models.Driver](ctrl),
		Alerts:   mocks.NewMockEntityRepo[models.EmergencyAlert](ctrl),
		Ratings:  mocks.NewMockEntityRepo[models.Rating](ctrl),
	}
	engine := newTestEngine(store, scheduler.NewManual(syncStart))
	before := engine.Snapshot()

	snap, err := engine.Sync(context.Background(), 0, true)

	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, fleet.ErrNoActor))
	assert.Same(t, before, engine.Snapshot())
	assert.False(t, engine.NetworkError())
}

func TestEngine_Sync_InFlightGuard(t *testing.T) {
	engine := newTestEngine(seedStore(t), scheduler.NewManual(syncStart))
	before := engine.Snapshot()
	engine.syncing.Store(true)

	snap, err := engine.Sync(actorCtx(), 0, false)

	assert.Nil(t, snap)
	assert.True(t, errors.Is(err, fleet.ErrSyncInProgress))
	assert.Same(t, before, engine.Snapshot())

	snap, err = engine.Sync(actorCtx(), 0, true)

	require.NoError(t, err)
	assert.Len(t, snap.Rides, 1)
	assert.True(t, engine.syncing.Load(), "a forced pull must not release a guard it did not take")
}

func TestEngine_Sync_BackoffThenNetworkError(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mem := seedStore(t)
	rides := mocks.NewMockEntityRepo[models.Ride](ctrl)
	attempts := 0
	rides.EXPECT().List(gomock.Any(), models.SortUpdatedDateDesc, DefaultRideFetchLimit).
		DoAndReturn(func(ctx context.Context, _ models.Sort, _ int) ([]models.Ride, error) {
			attempts++
			_, ok := appctx.GetActor(ctx)
			assert.True(t, ok, "retries keep the actor")
			return nil, errors.New("connection refused")
		}).Times(4)

	store := &fleet.Store{Rides: rides, Vehicles: mem.Vehicles, Drivers: mem.Drivers, Alerts: mem.Alerts, Ratings: mem.Ratings}
	sched := scheduler.NewManual(syncStart)
	engine := newTestEngine(store, sched)

	var exhausted error
	engine.OnExhausted(func(err error) { exhausted = err })

	// Act & Assert
	_, err := engine.Sync(actorCtx(), 0, false)
	require.Error(t, err)
	assert.True(t, engine.NetworkError())
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, sched.Pending())

	for i, delay := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		sched.Advance(delay - time.Millisecond)
		assert.Equal(t, i+1, attempts, "retry %d fired early", i+1)
		sched.Advance(time.Millisecond)
		assert.Equal(t, i+2, attempts, "retry %d did not fire", i+1)
	}

	var netErr *fleet.NetworkError
	require.True(t, errors.As(exhausted, &netErr))
	assert.Equal(t, 4, netErr.Attempts)
	assert.True(t, engine.NetworkError())
	assert.Contains(t, engine.LastError(), "after 4 attempts")
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Minute)
	assert.Equal(t, 4, attempts)
}

func TestEngine_Sync_SuccessCancelsPendingRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mem := seedStore(t)
	rides := mocks.NewMockEntityRepo[models.Ride](ctrl)
	gomock.InOrder(
		rides.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")),
		rides.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.Ride{{ID: "r1"}}, nil),
	)

	store := &fleet.Store{Rides: rides, Vehicles: mem.Vehicles, Drivers: mem.Drivers, Alerts: mem.Alerts, Ratings: mem.Ratings}
	sched := scheduler.NewManual(syncStart)
	engine := newTestEngine(store, sched)

	_, err := engine.Sync(actorCtx(), 0, false)
	require.Error(t, err)
	require.Equal(t, 1, sched.Pending())

	snap, err := engine.Sync(actorCtx(), 0, true)

	require.NoError(t, err)
	assert.Len(t, snap.Rides, 1)
	assert.False(t, engine.NetworkError())
	assert.Empty(t, engine.LastError())
	assert.Equal(t, 0, sched.Pending())
}

func TestEngine_Apply(t *testing.T) {
	engine := newTestEngine(seedStore(t), scheduler.NewManual(syncStart))
	_, err := engine.Sync(actorCtx(), 0, false)
	require.NoError(t, err)
	before := engine.Snapshot()

	next := engine.Apply(func(s *models.Snapshot) *models.Snapshot {
		return s.WithRide(models.Ride{ID: "r2", Status: models.RideStatusPending})
	})

	assert.Same(t, next, engine.Snapshot())
	assert.Len(t, next.Rides, 2)
	assert.Len(t, before.Rides, 1)
}
