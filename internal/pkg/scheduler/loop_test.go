package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func startLoop(t *testing.T) *Loop {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		l.Close()
	})
	return l
}

func TestLoop_CallRunsOnLoop(t *testing.T) {
	l := startLoop(t)
	counter := 0

	for i := 0; i < 10; i++ {
		require.NoError(t, l.Call(context.Background(), func() { counter++ }))
	}

	assert.Equal(t, 10, counter)
}

func TestLoop_CallRecoversPanic(t *testing.T) {
	l := startLoop(t)

	err := l.Call(context.Background(), func() { panic("boom") })

	assert.Error(t, err)
	assert.NoError(t, l.Call(context.Background(), func() {}))
}

func TestLoop_EveryAndCancel(t *testing.T) {
	l := startLoop(t)
	fired := atomic.NewInt32(0)

	h := l.Every(5*time.Millisecond, func() { fired.Inc() })
	assert.Eventually(t, func() bool { return fired.Load() >= 3 }, time.Second, time.Millisecond)

	require.NoError(t, l.Call(context.Background(), h.Cancel))
	after := fired.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, after, fired.Load())
}

func TestLoop_AfterCancelledBeforeDue(t *testing.T) {
	l := startLoop(t)
	fired := atomic.NewBool(false)

	h := l.After(20*time.Millisecond, func() { fired.Store(true) })
	h.Cancel()
	time.Sleep(50 * time.Millisecond)

	assert.False(t, fired.Load())
}

func TestLoop_CallAfterClose(t *testing.T) {
	l := NewLoop()
	l.Close()

	err := l.Call(context.Background(), func() {})

	assert.ErrorIs(t, err, ErrStopped)
}

func TestLoop_SameIntervalFiresInRegistrationOrder(t *testing.T) {
	l := startLoop(t)
	ctx := context.Background()
	var order []string

	require.NoError(t, l.Call(ctx, func() {
		l.Every(4*time.Millisecond, func() { order = append(order, "assign") })
		l.Every(4*time.Millisecond, func() { order = append(order, "motion") })
	}))
	time.Sleep(200 * time.Millisecond)

	var fired []string
	require.NoError(t, l.Call(ctx, func() { fired = append(fired, order...) }))

	require.GreaterOrEqual(t, len(fired), 10)
	for i := 0; i+1 < len(fired); i += 2 {
		assert.Equal(t, "assign", fired[i], "tick %d", i/2)
		assert.Equal(t, "motion", fired[i+1], "tick %d", i/2)
	}
}

func TestLoop_AfterFiresOnceInDueOrder(t *testing.T) {
	l := startLoop(t)
	ctx := context.Background()
	var order []int

	require.NoError(t, l.Call(ctx, func() {
		l.After(30*time.Millisecond, func() { order = append(order, 3) })
		l.After(10*time.Millisecond, func() { order = append(order, 1) })
		l.After(20*time.Millisecond, func() { order = append(order, 2) })
	}))

	assert.Eventually(t, func() bool {
		var n int
		_ = l.Call(ctx, func() { n = len(order) })
		return n == 3
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	var fired []int
	require.NoError(t, l.Call(ctx, func() { fired = append(fired, order...) }))
	assert.Equal(t, []int{1, 2, 3}, fired)
}
