package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/piresc/shuttlefleet/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries    int              // Maximum number of retry attempts
	BaseDelay     time.Duration    // Base delay between retries
	MaxDelay      time.Duration    // Maximum delay between retries
	Multiplier    float64          // Exponential backoff multiplier
	Jitter        bool             // Add up to 10% random jitter
	RetryableFunc func(error) bool // Function to determine if error is retryable
}

// DefaultConfig returns the backoff used for snapshot pulls: 1s, 2s, 4s
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		RetryableFunc: func(err error) bool {
			return true
		},
	}
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	config Config
	logger *logger.ZapLogger
	sleep  func(ctx context.Context, d time.Duration) error
}

// New creates a new retrier with the given configuration
func New(config Config, l *logger.ZapLogger) *Retrier {
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.RetryableFunc == nil {
		config.RetryableFunc = func(error) bool { return true }
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Retrier{
		config: config,
		logger: l,
		sleep:  sleepCtx,
	}
}

// NewWithDefaults creates a new retrier with default configuration
func NewWithDefaults(l *logger.ZapLogger) *Retrier {
	return New(DefaultConfig(), l)
}

// MaxRetries returns the configured number of retries after the first attempt
func (r *Retrier) MaxRetries() int {
	return r.config.MaxRetries
}

// ShouldRetry reports whether a failure on the given zero-based retry count may be retried
func (r *Retrier) ShouldRetry(retryCount int, err error) bool {
	return err != nil && retryCount < r.config.MaxRetries && r.config.RetryableFunc(err)
}

// Delay returns the wait before retry number retryCount (zero-based)
func (r *Retrier) Delay(retryCount int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(retryCount))

	if r.config.MaxDelay > 0 && delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	if r.config.Jitter {
		delay += delay * 0.1 * rand.Float64()
	}

	return time.Duration(delay)
}

// Execute executes the function with retry logic
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	err, _ := r.ExecuteWithMetrics(ctx, fn)
	return err
}

// ExecuteWithMetrics executes the function with retry logic and returns metrics
func (r *Retrier) ExecuteWithMetrics(ctx context.Context, fn RetryableFunc) (error, RetryMetrics) {
	metrics := RetryMetrics{
		StartTime: time.Now(),
	}

	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		metrics.Attempts++

		if err := ctx.Err(); err != nil {
			metrics.EndTime = time.Now()
			return err, metrics
		}

		err := fn(ctx)
		if err == nil {
			metrics.EndTime = time.Now()
			metrics.Success = true
			if attempt > 0 {
				r.logger.Info("Function succeeded after retries",
					logger.Int("total_attempts", attempt+1),
					logger.Duration("total_duration", metrics.TotalDuration()))
			}
			return nil, metrics
		}

		lastErr = err
		metrics.Errors = append(metrics.Errors, err.Error())

		if !r.config.RetryableFunc(err) {
			r.logger.Debug("Error is not retryable, stopping",
				logger.Err(err),
				logger.Int("attempt", attempt+1))
			metrics.EndTime = time.Now()
			return err, metrics
		}

		if attempt == r.config.MaxRetries {
			break
		}

		delay := r.Delay(attempt)
		metrics.Delays = append(metrics.Delays, delay)

		r.logger.Debug("Function failed, retrying",
			logger.Err(err),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay),
			logger.Int("max_retries", r.config.MaxRetries))

		if err := r.sleep(ctx, delay); err != nil {
			metrics.EndTime = time.Now()
			return err, metrics
		}
	}

	metrics.EndTime = time.Now()

	r.logger.Error("Function failed after all retries",
		logger.Err(lastErr),
		logger.Int("total_attempts", metrics.Attempts))

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", metrics.Attempts, lastErr), metrics
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RetryMetrics holds metrics about retry execution
type RetryMetrics struct {
	StartTime time.Time
	EndTime   time.Time
	Attempts  int
	Success   bool
	Errors    []string
	Delays    []time.Duration
}

// TotalDuration returns the total duration of all retry attempts
func (m RetryMetrics) TotalDuration() time.Duration {
	return m.EndTime.Sub(m.StartTime)
}
