package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const cycleKey key = 0

// Cycle identifies one pass over the product list
type Cycle struct {
	ID        string
	StartTime time.Time
}

// WithCycle attaches a fresh cycle id to ctx
func WithCycle(ctx context.Context) context.Context {
	return context.WithValue(ctx, cycleKey, &Cycle{
		ID:        generateID(),
		StartTime: time.Now(),
	})
}

func GetCycle(ctx context.Context) *Cycle {
	if c, ok := ctx.Value(cycleKey).(*Cycle); ok {
		return c
	}
	return &Cycle{
		ID:        "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the cycle id
func Logger(ctx context.Context) zerolog.Logger {
	return log.With().Str("cycle", GetCycle(ctx).ID).Logger()
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// CycleError wraps a fatal batch error with the cycle it belongs to
type CycleError struct {
	CycleID   string
	StartTime time.Time
	Err       error
}

// Error implements the error interface
func (e *CycleError) Error() string {
	return fmt.Sprintf("[%s %s] %v", e.CycleID, e.StartTime.Format(time.RFC3339), e.Err)
}

// Unwrap returns the underlying error
func (e *CycleError) Unwrap() error {
	return e.Err
}

// NewCycleError creates a new CycleError from context
func NewCycleError(ctx context.Context, err error) error {
	c := GetCycle(ctx)
	return &CycleError{
		CycleID:   c.ID,
		StartTime: c.StartTime,
		Err:       err,
	}
}
