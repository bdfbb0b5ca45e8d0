package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulServer_ShutdownRunsHooksInReverse(t *testing.T) {
	// Arrange
	s := NewGracefulServer(echo.New(), 0)
	var order []string
	s.OnShutdown("database", func(ctx context.Context) error {
		order = append(order, "database")
		return nil
	})
	s.OnShutdown("broker", func(ctx context.Context) error {
		order = append(order, "broker")
		return errors.New("drain failed")
	})
	s.OnShutdown("simulation", func(ctx context.Context) error {
		order = append(order, "simulation")
		return nil
	})

	// Act
	err := s.Shutdown()

	// Assert
	assert.EqualError(t, err, "drain failed")
	assert.Equal(t, []string{"simulation", "broker", "database"}, order)
}

func TestGracefulServer_RunStopsOnContextCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s := NewGracefulServer(e, 0)

	closed := make(chan struct{})
	s.OnShutdown("probe", func(ctx context.Context) error {
		close(closed)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	<-closed
}
