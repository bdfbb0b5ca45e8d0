package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"go.uber.org/atomic"
)

// idleWait is how long Run sleeps when no timer is pending; adding a timer wakes it early
const idleWait = time.Hour

// Loop is a Scheduler backed by one goroutine draining a work queue.
// Timers live in a single set owned by that goroutine and fire in
// (due time, registration order), the same order Manual uses.
type Loop struct {
	queue chan func()
	quit  chan struct{}
	wake  chan struct{}
	once  sync.Once

	mu     sync.Mutex
	seq    uint64
	timers []*loopTimer
}

type loopTimer struct {
	at        time.Time
	interval  time.Duration
	seq       uint64
	fn        func()
	cancelled *atomic.Bool
}

// NewLoop creates a loop; callbacks run once Run is started
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 64),
		quit:  make(chan struct{}),
		wake:  make(chan struct{}, 1),
	}
}

// Run drains the queue and fires due timers until ctx is done or Close is called
func (l *Loop) Run(ctx context.Context) {
	timer := time.NewTimer(idleWait)
	defer timer.Stop()

	for {
		resetTimer(timer, l.untilNext())
		select {
		case <-ctx.Done():
			return
		case <-l.quit:
			return
		case fn := <-l.queue:
			safeRun(fn)
		case <-l.wake:
		case <-timer.C:
			l.fireDue()
		}
	}
}

// Close stops the loop; queued work that has not started is dropped
func (l *Loop) Close() {
	l.once.Do(func() { close(l.quit) })
}

func (l *Loop) Now() time.Time {
	return time.Now().UTC()
}

func (l *Loop) Do(fn func()) {
	select {
	case l.queue <- fn:
	case <-l.quit:
	}
}

func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	var panicErr error
	work := func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("panic in scheduled call: %v", r)
				logger.Error("Recovered panic in scheduled call",
					logger.String("panic", fmt.Sprint(r)),
					logger.String("stack", string(debug.Stack())))
			}
		}()
		fn()
	}

	select {
	case l.queue <- work:
	case <-l.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return panicErr
	case <-l.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) After(delay time.Duration, fn func()) Handle {
	return l.add(delay, 0, fn)
}

func (l *Loop) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic("scheduler: non-positive interval for Every")
	}
	return l.add(interval, interval, fn)
}

func (l *Loop) add(delay, interval time.Duration, fn func()) *loopTimer {
	t := &loopTimer{
		at:        time.Now().Add(delay),
		interval:  interval,
		fn:        fn,
		cancelled: atomic.NewBool(false),
	}

	l.mu.Lock()
	l.seq++
	t.seq = l.seq
	l.timers = append(l.timers, t)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return t
}

// untilNext returns the wait before the earliest live timer falls due
func (l *Loop) untilNext() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sortLocked()
	if len(l.timers) == 0 {
		return idleWait
	}
	if wait := time.Until(l.timers[0].at); wait > 0 {
		return wait
	}
	return 0
}

// fireDue runs every timer due by now, one at a time, in due order.
// A periodic timer that fell behind fires once per missed interval.
func (l *Loop) fireDue() {
	now := time.Now()
	for {
		t := l.next(now)
		if t == nil {
			return
		}
		safeRun(t.fn)

		select {
		case <-l.quit:
			return
		default:
		}
	}
}

// next pops the earliest live timer due at or before now and re-arms it when periodic
func (l *Loop) next(now time.Time) *loopTimer {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sortLocked()
	if len(l.timers) == 0 || l.timers[0].at.After(now) {
		return nil
	}

	t := l.timers[0]
	if t.interval > 0 {
		l.seq++
		t.at = t.at.Add(t.interval)
		t.seq = l.seq
		return t
	}

	l.timers = l.timers[1:]
	if !t.cancelled.CompareAndSwap(false, true) {
		return nil
	}
	return t
}

// sortLocked drops cancelled timers and orders the rest by (at, seq)
func (l *Loop) sortLocked() {
	live := l.timers[:0]
	for _, t := range l.timers {
		if !t.cancelled.Load() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(l.timers); i++ {
		l.timers[i] = nil
	}
	l.timers = live

	sort.SliceStable(l.timers, func(i, j int) bool {
		if l.timers[i].at.Equal(l.timers[j].at) {
			return l.timers[i].seq < l.timers[j].seq
		}
		return l.timers[i].at.Before(l.timers[j].at)
	})
}

// Cancel marks the timer cancelled. Timers fire on the loop goroutine, so a
// Cancel made on the loop guarantees the callback never runs again.
func (t *loopTimer) Cancel() {
	t.cancelled.Store(true)
}

func resetTimer(timer *time.Timer, d time.Duration) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(d)
}

func safeRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered panic in scheduled task",
				logger.String("panic", fmt.Sprint(r)),
				logger.String("stack", string(debug.Stack())))
		}
	}()
	fn()
}
