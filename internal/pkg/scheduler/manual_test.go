package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestManual_EveryFiresPerInterval(t *testing.T) {
	m := NewManual(epoch)
	var fired []time.Time

	m.Every(2*time.Second, func() { fired = append(fired, m.Now()) })
	m.Advance(7 * time.Second)

	require.Len(t, fired, 3)
	assert.Equal(t, epoch.Add(2*time.Second), fired[0])
	assert.Equal(t, epoch.Add(6*time.Second), fired[2])
	assert.Equal(t, epoch.Add(7*time.Second), m.Now())
}

func TestManual_AfterFiresOnce(t *testing.T) {
	m := NewManual(epoch)
	calls := 0

	m.After(time.Second, func() { calls++ })
	m.Advance(10 * time.Second)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_CancelPreventsFiring(t *testing.T) {
	m := NewManual(epoch)
	calls := 0

	h := m.Every(time.Second, func() { calls++ })
	m.Advance(2 * time.Second)
	h.Cancel()
	m.Advance(5 * time.Second)

	assert.Equal(t, 2, calls)
}

func TestManual_CallbackCancellingOtherTimers(t *testing.T) {
	// Arrange
	m := NewManual(epoch)
	var group Group
	other := 0
	group.Add(m.Every(time.Second, func() { other++ }))
	m.Every(3*time.Second, func() { group.CancelAll() })

	// Act
	m.Advance(10 * time.Second)

	// Assert: at 3s the canceller was armed earlier than the re-armed 1s timer, so it runs first
	assert.Equal(t, 2, other)
}

func TestManual_SameInstantRunsEarliestArmedFirst(t *testing.T) {
	m := NewManual(epoch)
	var order []string

	m.Every(8*time.Second, func() { order = append(order, "assign") })
	m.Every(2*time.Second, func() { order = append(order, "motion") })
	m.Advance(8 * time.Second)

	assert.Equal(t, []string{"motion", "motion", "motion", "assign", "motion"}, order)
}

func TestManual_TimersAddedDuringAdvance(t *testing.T) {
	m := NewManual(epoch)
	var fired []time.Duration

	m.After(time.Second, func() {
		m.After(2*time.Second, func() { fired = append(fired, m.Now().Sub(epoch)) })
	})
	m.Advance(5 * time.Second)

	assert.Equal(t, []time.Duration{3 * time.Second}, fired)
}

func TestManual_PanicIsRecovered(t *testing.T) {
	m := NewManual(epoch)
	calls := 0

	m.Every(time.Second, func() { panic("tick failed") })
	m.Every(time.Second, func() { calls++ })

	assert.NotPanics(t, func() { m.Advance(3 * time.Second) })
	assert.Equal(t, 3, calls)
}

func TestManual_Call(t *testing.T) {
	m := NewManual(epoch)
	ran := false

	err := m.Call(context.Background(), func() { ran = true })

	require.NoError(t, err)
	assert.True(t, ran)

	err = m.Call(context.Background(), func() { panic("bad") })
	assert.Error(t, err)
}
