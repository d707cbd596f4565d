package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLimiter_SharesBucketAcrossSubdomains(t *testing.T) {
	l := NewStoreLimiter(0.001, 1)

	assert.True(t, l.Allow("https://www.amazon.com/dp/1"))
	assert.False(t, l.Allow("https://smile.amazon.com/dp/2"), "same store must share the bucket")
	assert.True(t, l.Allow("https://www.newegg.com/p/1"), "other stores have their own bucket")
}

func TestStoreLimiter_WaitHonoursContext(t *testing.T) {
	l := NewStoreLimiter(0.001, 1)
	require.NoError(t, l.Wait(context.Background(), "https://www.bestbuy.com/a"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "https://www.bestbuy.com/b"))
}

func TestStoreLimiter_InvalidURLPasses(t *testing.T) {
	l := NewStoreLimiter(0.001, 1)
	assert.NoError(t, l.Wait(context.Background(), "::"))
	assert.True(t, l.Allow("::"))
}
