package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
)

// ShutdownFunc releases one component during shutdown
type ShutdownFunc func(ctx context.Context) error

// GracefulServer runs an echo server until the context is cancelled or a
// termination signal arrives, then shuts the server and registered components down
// in reverse registration order
type GracefulServer struct {
	echo            *echo.Echo
	port            int
	shutdownTimeout time.Duration
	hooks           []namedHook
}

type namedHook struct {
	name string
	fn   ShutdownFunc
}

// NewGracefulServer creates a new server with graceful shutdown
func NewGracefulServer(e *echo.Echo, port int) *GracefulServer {
	return &GracefulServer{
		echo:            e,
		port:            port,
		shutdownTimeout: 30 * time.Second,
	}
}

// OnShutdown registers a cleanup function
func (s *GracefulServer) OnShutdown(name string, fn ShutdownFunc) {
	s.hooks = append(s.hooks, namedHook{name: name, fn: fn})
}

// Run blocks until ctx is done, SIGINT/SIGTERM is received, or the listener fails
func (s *GracefulServer) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", s.port)
		logger.Info("Starting HTTP server", logger.String("address", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	case err, ok := <-errCh:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	if err := s.Shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown stops the HTTP server and runs every registered hook.
// A failing hook does not prevent the remaining ones from running.
func (s *GracefulServer) Shutdown() error {
	logger.Info("Shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var firstErr error
	if err := s.echo.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.Err(err))
		firstErr = err
	}

	for i := len(s.hooks) - 1; i >= 0; i-- {
		hook := s.hooks[i]
		if err := hook.fn(ctx); err != nil {
			logger.Error("Error during component shutdown",
				logger.String("component", hook.name),
				logger.Err(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	logger.Info("Server shutdown completed")
	return firstErr
}
