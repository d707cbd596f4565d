// internal/engine/dynamic/fetcher.go
package dynamic

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/pricewatch/internal/engine"
	"github.com/law-makers/pricewatch/internal/identity"
	"github.com/law-makers/pricewatch/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// Fetcher renders product pages in headless Chrome before handing back the DOM.
// One browser process is started lazily and shared; every fetch gets its own tab.
type Fetcher struct {
	limiter    ratelimit.RateLimiter
	identities *identity.Pool
	timeout    time.Duration
	renderWait time.Duration

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
	proxy       string
}

// New creates a dynamic Fetcher. renderWait is how long scripts are given to
// settle after navigation before the DOM is captured.
func New(lim ratelimit.RateLimiter, ids *identity.Pool, timeout, renderWait time.Duration) *Fetcher {
	return &Fetcher{
		limiter:    lim,
		identities: ids,
		timeout:    timeout,
		renderWait: renderWait,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "DynamicFetcher"
}

// Fetch navigates to rawURL, waits for rendering and returns the outer HTML of the document
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	start := time.Now()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return "", engine.NewFetchError(engine.ErrCodeTimeout, rawURL, err)
		}
	}

	id := f.identities.Next()
	allocCtx, err := f.allocator(id.Proxy)
	if err != nil {
		return "", engine.NewFetchError(engine.ErrCodeBrowser, rawURL, err)
	}

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	timeout := f.timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	// Abort the tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var (
		statusMu   sync.Mutex
		statusCode int64
	)
	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || resp.Type != network.ResourceTypeDocument {
			return
		}
		statusMu.Lock()
		if statusCode == 0 || resp.Response.URL == rawURL {
			statusCode = resp.Response.Status
		}
		statusMu.Unlock()
	})

	log.Debug().
		Str("url", rawURL).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	var html string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": id.AcceptLanguage}),
		emulateUserAgent(id.UserAgent),
		chromedp.Navigate(rawURL),
		chromedp.Sleep(f.renderWait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(tabCtx.Err(), context.DeadlineExceeded) {
			return "", engine.NewFetchError(engine.ErrCodeTimeout, rawURL, err)
		}
		return "", engine.NewFetchError(engine.ErrCodeNetworkError, rawURL, fmt.Errorf("chromedp execution failed: %w", err))
	}

	statusMu.Lock()
	status := int(statusCode)
	statusMu.Unlock()

	if status != 0 && (status < 200 || status > 299) {
		fetchErr := engine.StatusError(rawURL, status)
		if fetchErr.Code == engine.ErrCodeBlocked {
			f.identities.MarkBlocked(id)
		}
		return "", fetchErr
	}

	log.Debug().
		Str("url", rawURL).
		Int("status", status).
		Int("bytes", len(html)).
		Int64("response_time_ms", time.Since(start).Milliseconds()).
		Msg("Fetch completed")

	return html, nil
}

// Close shuts the shared browser down
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allocCancel != nil {
		f.allocCancel()
		f.allocCancel = nil
		f.allocCtx = nil
	}
	return nil
}

// allocator returns the shared browser allocator, restarting it when the proxy changes
func (f *Fetcher) allocator(proxy string) (context.Context, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.allocCtx != nil && f.proxy == proxy {
		return f.allocCtx, nil
	}
	if f.allocCancel != nil {
		f.allocCancel()
	}

	chromePath := FindChrome()
	if chromePath == "" {
		return nil, engine.ErrBrowserNotFound
	}

	opts := append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocatorFlags()...)
	if proxy != "" {
		opts = append(opts, chromedp.ProxyServer(proxy))
	}

	f.allocCtx, f.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	f.proxy = proxy

	log.Debug().Str("chrome", chromePath).Bool("proxy", proxy != "").Msg("Started browser allocator")
	return f.allocCtx, nil
}

func allocatorFlags() []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("window-size", "1920,1080"),
	}
}

func emulateUserAgent(ua string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if ua == "" {
			return nil
		}
		return emulation.SetUserAgentOverride(ua).Do(ctx)
	})
}
