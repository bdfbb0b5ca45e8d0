package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
)

// Checker reports the health of one dependency
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// Report is the body of the /health endpoint
type Report struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	info := BuildInfo{
		Version:     envOr("VERSION", "development"),
		GitCommit:   envOr("GIT_COMMIT", "unknown"),
		ServiceName: serviceName,
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
	}

	return func(c echo.Context) error {
		resp := info
		resp.ServerTime = time.Now().UTC()
		return c.JSON(http.StatusOK, resp)
	}
}

// NewHealthHandler pings every checker and answers 503 if any fails
func NewHealthHandler(checkers map[string]Checker, timeout time.Duration) echo.HandlerFunc {
	names := make([]string, 0, len(checkers))
	for name := range checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		report := Report{Status: "ok", Dependencies: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checkers[name].Ping(ctx); err != nil {
				logger.Warn("Health check failed", logger.String("dependency", name), logger.Err(err))
				report.Dependencies[name] = "down"
				report.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			report.Dependencies[name] = "up"
		}
		return c.JSON(status, report)
	}
}

// RegisterHealthEndpoints registers the health check endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName string, checkers map[string]Checker) {
	e.GET("/ping", NewPingHandler(serviceName))
	e.GET("/health", NewHealthHandler(checkers, 3*time.Second))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
