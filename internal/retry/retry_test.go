// internal/retry/retry_test.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tempErr struct{ temporary bool }

func (e tempErr) Error() string   { return fmt.Sprintf("temporary=%v", e.temporary) }
func (e tempErr) Temporary() bool { return e.temporary }

func noSleep(t *testing.T) *[]time.Duration {
	t.Helper()
	var waits []time.Duration
	orig := sleep
	sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	t.Cleanup(func() { sleep = orig })
	return &waits
}

func TestWithRetry_SucceedsOnSecondAttempt(t *testing.T) {
	waits := noSleep(t)
	cfg := Config{MaxAttempts: 2, MinBackoff: time.Minute, MaxBackoff: 3 * time.Minute}

	calls := 0
	err := WithRetry(context.Background(), cfg, func(attempt int) error {
		calls++
		if attempt == 0 {
			return tempErr{temporary: true}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, *waits, 1)
	assert.GreaterOrEqual(t, (*waits)[0], time.Minute)
	assert.LessOrEqual(t, (*waits)[0], 3*time.Minute)
}

func TestWithRetry_Exhausted(t *testing.T) {
	noSleep(t)
	cause := errors.New("boom")

	calls := 0
	err := WithRetry(context.Background(), Config{MaxAttempts: 2}, func(int) error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.ErrorIs(t, err, cause)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
}

func TestWithRetry_PermanentErrorNotRetried(t *testing.T) {
	waits := noSleep(t)

	calls := 0
	err := WithRetry(context.Background(), Config{MaxAttempts: 2}, func(int) error {
		calls++
		return fmt.Errorf("resolve: %w", tempErr{temporary: false})
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestWithRetry_PermanentInsideJoin(t *testing.T) {
	noSleep(t)

	calls := 0
	err := WithRetry(context.Background(), Config{MaxAttempts: 3}, func(int) error {
		calls++
		return errors.Join(tempErr{temporary: true}, tempErr{temporary: false})
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ContextCancelledDuringBackoff(t *testing.T) {
	noSleep(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, Config{MaxAttempts: 3}, func(int) error {
		calls++
		return tempErr{temporary: true}
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestBackoff_Range(t *testing.T) {
	cfg := Config{MinBackoff: 10 * time.Millisecond, MaxBackoff: 20 * time.Millisecond}
	for i := 0; i < 100; i++ {
		d := Backoff(cfg)
		assert.GreaterOrEqual(t, d, cfg.MinBackoff)
		assert.LessOrEqual(t, d, cfg.MaxBackoff)
	}

	assert.Equal(t, 5*time.Second, Backoff(Config{MinBackoff: 5 * time.Second, MaxBackoff: time.Second}))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.MaxAttempts)
	assert.Equal(t, 60*time.Second, cfg.MinBackoff)
	assert.Equal(t, 180*time.Second, cfg.MaxBackoff)
}
