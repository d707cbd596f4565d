// internal/ratelimit/limiter.go
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	urlutil "github.com/law-makers/pricewatch/internal/utils/url"
	"golang.org/x/time/rate"
)

// RateLimiter throttles outbound requests.
//
// Implementations key their buckets by store so that several tracked products on the same
// store share one request budget regardless of subdomain.
type RateLimiter interface {
	// Wait blocks until a request for the given URL can proceed.
	// If the context is cancelled before the rate limit allows, an error is returned.
	Wait(ctx context.Context, urlStr string) error

	// Allow reports whether a request for the given URL can proceed immediately.
	Allow(urlStr string) bool
}

// StoreLimiter provides per-store token buckets
type StoreLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	perStore rate.Limit
	burst    int
}

// NewStoreLimiter creates a limiter allowing requestsPerSecond per store
func NewStoreLimiter(requestsPerSecond float64, burst int) *StoreLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 0.5
	}
	if burst <= 0 {
		burst = 1
	}

	return &StoreLimiter{
		limiters: make(map[string]*rate.Limiter),
		perStore: rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until the request for the given URL can proceed according to rate limits
func (sl *StoreLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	key := limiterKey(urlStr)
	if key == "" {
		// Invalid URL, let it proceed (will fail elsewhere)
		return nil
	}

	return sl.getLimiter(key).Wait(ctx)
}

// Allow checks if a request can proceed immediately without blocking
func (sl *StoreLimiter) Allow(urlStr string) bool {
	key := limiterKey(urlStr)
	if key == "" {
		return true
	}
	return sl.getLimiter(key).Allow()
}

func (sl *StoreLimiter) getLimiter(key string) *rate.Limiter {
	sl.mu.RLock()
	limiter, exists := sl.limiters[key]
	sl.mu.RUnlock()

	if exists {
		return limiter
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := sl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(sl.perStore, sl.burst)
	sl.limiters[key] = limiter
	return limiter
}

// limiterKey prefers the store identifier and falls back to the raw host
func limiterKey(urlStr string) string {
	if id, err := urlutil.StoreID(urlStr); err == nil {
		return id
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
