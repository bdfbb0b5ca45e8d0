package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedZapLogger() (*logger.ZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.ZapLogger{Logger: zap.New(core)}, logs
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		panicValue interface{}
		expectType string
	}{
		{name: "string panic", panicValue: "boom", expectType: "string"},
		{name: "error panic", panicValue: errors.New("broken"), expectType: "*errors.errorString"},
		{name: "int panic", panicValue: 42, expectType: "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			zl, logs := observedZapLogger()
			e := echo.New()
			e.Use(PanicRecoveryWithZapMiddleware(zl))
			e.GET("/panic", func(c echo.Context) error {
				c.Set(logger.ActorIDKey, "dispatcher-1")
				panic(tt.panicValue)
			})

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-123")
			rec := httptest.NewRecorder()

			// Act
			e.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "req-123", body["request_id"])

			entries := logs.FilterMessage("Panic recovered during request processing").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, tt.expectType, fields["panic_type"])
			assert.Equal(t, "dispatcher-1", fields[logger.ActorIDKey])
			assert.Equal(t, "/panic", fields["path"])
			assert.NotEmpty(t, fields["stack_trace"])
		})
	}
}

func TestPanicRecoveryWithZapMiddleware_PassesThrough(t *testing.T) {
	zl, logs := observedZapLogger()
	e := echo.New()
	e.Use(PanicRecoveryWithZapMiddleware(zl))
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, "fine")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fine", rec.Body.String())
	assert.Equal(t, 0, logs.Len())
}

func TestPanicRecoveryWithZapMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() {
		PanicRecoveryWithZapMiddleware(nil)
	})
}
