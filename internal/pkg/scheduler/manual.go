package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/logger"
)

// Manual is a Scheduler driven by virtual time. Callbacks run synchronously
// inside Advance, in due-time order, on the caller's goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	at        time.Time
	interval  time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	owner     *Manual
}

// NewManual creates a manual scheduler whose clock starts at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Do runs fn immediately
func (m *Manual) Do(fn func()) {
	safeRun(fn)
}

// Call runs fn immediately
func (m *Manual) Call(ctx context.Context, fn func()) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in scheduled call: %v", r)
			logger.Error("Recovered panic in scheduled call", logger.String("panic", fmt.Sprint(r)))
		}
	}()
	fn()
	return nil
}

func (m *Manual) After(delay time.Duration, fn func()) Handle {
	return m.add(delay, 0, fn)
}

func (m *Manual) Every(interval time.Duration, fn func()) Handle {
	return m.add(interval, interval, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{at: m.now.Add(delay), interval: interval, seq: m.seq, fn: fn, owner: m}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Cancel() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	t.cancelled = true
}

// Advance moves the clock forward by d, firing every timer that falls due
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		t := m.next(target)
		if t == nil {
			break
		}
		safeRun(t.fn)
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// next pops the earliest live timer due at or before target and moves the clock to it
func (m *Manual) next(target time.Time) *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at.Equal(m.timers[j].at) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at.Before(m.timers[j].at)
	})

	if len(m.timers) == 0 || m.timers[0].at.After(target) {
		return nil
	}

	t := m.timers[0]
	m.now = t.at
	if t.interval > 0 {
		m.seq++
		t.at = t.at.Add(t.interval)
		t.seq = m.seq
	} else {
		t.cancelled = true
	}
	return t
}

// Pending returns the number of live timers
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}
