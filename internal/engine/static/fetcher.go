// internal/engine/static/fetcher.go
package static

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/law-makers/pricewatch/internal/engine"
	"github.com/law-makers/pricewatch/internal/identity"
	"github.com/law-makers/pricewatch/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps how much of a product page is read
const maxBodyBytes = 8 << 20

// Fetcher retrieves product pages with plain HTTP requests
type Fetcher struct {
	limiter    ratelimit.RateLimiter
	identities *identity.Pool
	timeout    time.Duration
	headers    map[string]string
	transport  http.RoundTripper
}

// New creates a static Fetcher with dependency injection. headers are added to every request
// after the identity headers.
func New(lim ratelimit.RateLimiter, ids *identity.Pool, timeout time.Duration, headers map[string]string) *Fetcher {
	return &Fetcher{
		limiter:    lim,
		identities: ids,
		timeout:    timeout,
		headers:    headers,
		transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch downloads the page at rawURL and returns its body
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	start := time.Now()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return "", engine.NewFetchError(engine.ErrCodeTimeout, rawURL, err)
		}
	}

	id := f.identities.Next()
	client, err := f.clientFor(id)
	if err != nil {
		return "", engine.NewFetchError(engine.ErrCodeNetworkError, rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", engine.NewFetchError(engine.ErrCodeNetworkError, rawURL, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", id.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", id.AcceptLanguage)
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	log.Debug().
		Str("url", rawURL).
		Str("fetcher", f.Name()).
		Bool("proxy", id.Proxy != "").
		Msg("Starting fetch")

	resp, err := client.Do(req)
	if err != nil {
		return "", engine.NewFetchError(classifyTransportError(err), rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fetchErr := engine.StatusError(rawURL, resp.StatusCode)
		if fetchErr.Code == engine.ErrCodeBlocked {
			f.identities.MarkBlocked(id)
		}
		return "", fetchErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", engine.NewFetchError(classifyTransportError(err), rawURL, fmt.Errorf("failed to read body: %w", err))
	}

	log.Debug().
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return string(body), nil
}

func (f *Fetcher) clientFor(id identity.Identity) (*http.Client, error) {
	transport := f.transport
	if id.Proxy != "" {
		proxyURL, err := url.Parse(id.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", id.Proxy, err)
		}
		base, ok := f.transport.(*http.Transport)
		if !ok {
			return nil, errors.New("proxy requires an *http.Transport")
		}
		t := base.Clone()
		t.Proxy = http.ProxyURL(proxyURL)
		transport = t
	}
	return &http.Client{Timeout: f.timeout, Transport: transport}, nil
}

func classifyTransportError(err error) engine.ErrorCode {
	if errors.Is(err, context.DeadlineExceeded) {
		return engine.ErrCodeTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return engine.ErrCodeTimeout
	}
	return engine.ErrCodeNetworkError
}
