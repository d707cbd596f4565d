// internal/retry/retry.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// Config defines how often an operation is attempted and how long to wait in between.
// The wait before each retry is drawn uniformly from [MinBackoff, MaxBackoff].
type Config struct {
	MaxAttempts int           // Total attempts including the first
	MinBackoff  time.Duration // Lower bound of the randomized wait
	MaxBackoff  time.Duration // Upper bound of the randomized wait
}

// DefaultConfig returns the batch retry policy: one retry after one to three minutes
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 2,
		MinBackoff:  60 * time.Second,
		MaxBackoff:  180 * time.Second,
	}
}

// ExhaustedError is returned when every attempt failed
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// sleep waits for d or until ctx is done. Replaced in tests.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WithRetry executes fn until it succeeds, returns a permanent error, or runs out of attempts
func WithRetry(ctx context.Context, cfg Config, fn func(attempt int) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			if attempt > 0 {
				log.Info().
					Int("attempts", attempt+1).
					Msg("Retry succeeded")
			}
			return nil
		}

		lastErr = err

		if !shouldRetry(err) {
			log.Debug().
				Err(err).
				Msg("Error is not retryable")
			return err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxAttempts-1 {
			backoff := Backoff(cfg)

			log.Warn().
				Int("attempt", attempt+1).
				Int("max_attempts", cfg.MaxAttempts).
				Dur("backoff", backoff).
				Err(err).
				Msg("Retrying after backoff")

			if err := sleep(ctx, backoff); err != nil {
				return err
			}
		}
	}

	return &ExhaustedError{Attempts: cfg.MaxAttempts, Last: lastErr}
}

// Backoff draws a wait uniformly from the configured range
func Backoff(cfg Config) time.Duration {
	if cfg.MaxBackoff <= cfg.MinBackoff {
		return cfg.MinBackoff
	}
	return cfg.MinBackoff + time.Duration(rand.Int63n(int64(cfg.MaxBackoff-cfg.MinBackoff)+1))
}

// shouldRetry reports whether err may go away on a later attempt. Errors are retried
// unless one of them, possibly inside a joined error, reports Temporary() == false.
func shouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return !hasPermanent(err)
}

// hasPermanent walks joined errors looking for one that declares itself permanent
func hasPermanent(err error) bool {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if hasPermanent(e) {
				return true
			}
		}
		return false
	}
	if t, ok := err.(interface{ Temporary() bool }); ok && !t.Temporary() {
		return true
	}
	if next := errors.Unwrap(err); next != nil {
		return hasPermanent(next)
	}
	return false
}
