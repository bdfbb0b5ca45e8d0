// Package scheduler runs timer callbacks and submitted work on a single
// execution context, so the state they touch needs no locks.
package scheduler

import (
	"context"
	"errors"
	"time"
)

// ErrStopped is returned by Call once the scheduler has been closed
var ErrStopped = errors.New("scheduler stopped")

// Handle cancels a scheduled task. Cancel is idempotent.
type Handle interface {
	Cancel()
}

// Scheduler owns the single execution context of a simulation.
// Every callback passed to it runs on that context, never concurrently with another.
type Scheduler interface {
	// Every runs fn each interval until cancelled.
	Every(interval time.Duration, fn func()) Handle
	// After runs fn once after delay unless cancelled first.
	After(delay time.Duration, fn func()) Handle
	// Do queues fn to run on the execution context.
	Do(fn func())
	// Call runs fn on the execution context and waits for it to return.
	Call(ctx context.Context, fn func()) error
	// Now returns the scheduler's notion of the current time.
	Now() time.Time
}

// Group collects handles so they can be cancelled together
type Group struct {
	handles []Handle
}

// Add records h and returns it
func (g *Group) Add(h Handle) Handle {
	g.handles = append(g.handles, h)
	return h
}

// CancelAll cancels every recorded handle and forgets them
func (g *Group) CancelAll() {
	for _, h := range g.handles {
		h.Cancel()
	}
	g.handles = nil
}

// Len returns the number of live handles in the group
func (g *Group) Len() int {
	return len(g.handles)
}
