package logger

import (
	"context"
	"sync"

	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"
)

var (
	globalLogger *ZapLogger
	mu           sync.RWMutex
)

// SetGlobalLogger sets the global logger instance.
// This should be called once during application startup.
func SetGlobalLogger(logger *ZapLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the global logger instance.
// If no logger is set, it installs a production zap logger.
func GetGlobalLogger() *ZapLogger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		defaultLogger, err := zap.NewProduction()
		if err != nil {
			defaultLogger = zap.NewNop()
		}
		globalLogger = &ZapLogger{Logger: defaultLogger}
	}
	return globalLogger
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) {
	GetGlobalLogger().Info(msg, fields...)
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

// Error logs an error message using the global logger
func Error(msg string, fields ...Field) {
	GetGlobalLogger().Error(msg, fields...)
}

// Fatal logs a fatal message and exits using the global logger
func Fatal(msg string, fields ...Field) {
	GetGlobalLogger().Fatal(msg, fields...)
}

// ErrorCtx logs an error message correlated with the New Relic transaction in ctx
func ErrorCtx(ctx context.Context, msg string, fields ...Field) {
	l := GetGlobalLogger()
	if txn := newrelic.FromContext(ctx); txn != nil {
		l.WithNewRelicContext(txn).Error(msg, fields...)
		return
	}
	l.Error(msg, fields...)
}

// WarnCtx logs a warning correlated with the New Relic transaction in ctx
func WarnCtx(ctx context.Context, msg string, fields ...Field) {
	l := GetGlobalLogger()
	if txn := newrelic.FromContext(ctx); txn != nil {
		l.WithNewRelicContext(txn).Warn(msg, fields...)
		return
	}
	l.Warn(msg, fields...)
}
