// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/law-makers/pricewatch/internal/config"
	"github.com/law-makers/pricewatch/internal/credentials"
	"github.com/law-makers/pricewatch/internal/engine"
	"github.com/law-makers/pricewatch/internal/engine/dynamic"
	"github.com/law-makers/pricewatch/internal/engine/static"
	"github.com/law-makers/pricewatch/internal/history"
	"github.com/law-makers/pricewatch/internal/identity"
	"github.com/law-makers/pricewatch/internal/notify"
	"github.com/law-makers/pricewatch/internal/pipeline"
	"github.com/law-makers/pricewatch/internal/ratelimit"
	"github.com/law-makers/pricewatch/internal/report"
	"github.com/law-makers/pricewatch/internal/retry"
	"github.com/law-makers/pricewatch/internal/store"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config   *config.Config
	Registry *store.Registry
	Fetcher  engine.Fetcher
	Pipeline *pipeline.Pipeline
	Renderer *report.Renderer
	History  history.Sink
	Notifier notify.Notifier

	stdout    io.Writer
	progress  bool
	bar       *progressbar.ProgressBar
	sleep     func(ctx context.Context, d time.Duration) error
	closers   []io.Closer
	startTime time.Time
}

// Option customises an Application, mainly for tests
type Option func(*Application)

// WithFetcher replaces the HTTP or browser fetcher
func WithFetcher(f engine.Fetcher) Option {
	return func(a *Application) { a.Fetcher = f }
}

// WithNotifier replaces the mail notifier
func WithNotifier(n notify.Notifier) Option {
	return func(a *Application) { a.Notifier = n }
}

// WithStdout redirects console reports
func WithStdout(w io.Writer) Option {
	return func(a *Application) { a.stdout = w }
}

// WithSleep replaces the wait used between watch cycles
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(a *Application) { a.sleep = fn }
}

// SetupLogging configures the global zerolog logger from cfg
func SetupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = os.Stderr
	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime, NoColor: cfg.NoColor}
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Builds the store registry with every built-in adapter
//   - Creates the per-store rate limiter and identity pool
//   - Creates the static or, with Render set, the headless browser fetcher
//   - Opens the history sinks
//   - Chooses SMTP delivery or a log-only notifier
//
// If any step fails, an error is returned and already opened resources are released.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	a := &Application{
		Config:    cfg,
		Registry:  store.DefaultRegistry(),
		Renderer:  report.NewRenderer(cfg.NoColor),
		stdout:    os.Stdout,
		sleep:     sleepContext,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.progress = !cfg.JSONLog && cfg.LogLevel != "error" && isatty.IsTerminal(os.Stderr.Fd())

	if a.Fetcher == nil {
		a.Fetcher = a.newFetcher()
	}
	if c, ok := a.Fetcher.(io.Closer); ok {
		a.closers = append(a.closers, c)
	}

	a.Pipeline = pipeline.New(a.Registry, a.Fetcher,
		pipeline.WithRetry(retry.Config{
			MaxAttempts: 2,
			MinBackoff:  cfg.RetryBackoffMin,
			MaxBackoff:  cfg.RetryBackoffMax,
		}),
		pipeline.WithProgress(a.onProgress),
	)

	sink, err := openHistory(cfg)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}
	a.History = sink

	if a.Notifier == nil {
		a.Notifier = newNotifier(cfg)
	}

	log.Debug().
		Str("fetcher", a.Fetcher.Name()).
		Strs("stores", a.Registry.Stores()).
		Bool("history", a.History != nil).
		Msg("Application initialized")
	return a, nil
}

func (a *Application) newFetcher() engine.Fetcher {
	cfg := a.Config
	limiter := ratelimit.NewStoreLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	ids := identity.NewPool(cfg.UserAgents, cfg.Proxies, cfg.IdentityCooldown)

	if cfg.Render {
		return dynamic.New(limiter, ids, cfg.HTTPTimeout, cfg.RenderWait)
	}
	return static.New(limiter, ids, cfg.HTTPTimeout, cfg.Headers)
}

func openHistory(cfg *config.Config) (history.Sink, error) {
	var sinks history.Multi
	if cfg.SaveHistory {
		sinks = append(sinks, history.NewCSVSink(cfg.PricesFile))
	}
	if cfg.HistoryDB != "" {
		db, err := history.OpenSQLite(cfg.HistoryDB)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, db)
	}
	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}

// newNotifier builds the SMTP notifier, falling back to the keyring for the password and to
// logging when settings are incomplete
func newNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.SendMail {
		return notify.LogNotifier{Reason: "mail disabled"}
	}

	smtpCfg := notify.SMTPConfig{
		Host:     cfg.Mail.Domain,
		Port:     cfg.Mail.Port,
		User:     cfg.Mail.User,
		Password: cfg.Mail.Password,
		To:       cfg.Mail.To,
	}
	if smtpCfg.Password == "" && smtpCfg.User != "" {
		if creds, err := credentials.NewStore(); err == nil {
			if pass, err := creds.Password(smtpCfg.User); err == nil {
				smtpCfg.Password = pass
			} else if !errors.Is(err, credentials.ErrNotFound) {
				log.Warn().Err(err).Msg("Could not read mail password from keyring")
			}
		}
	}

	n, err := notify.NewSMTPNotifier(smtpCfg, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Alert mail disabled")
		return notify.LogNotifier{Reason: err.Error()}
	}
	return n
}

func (a *Application) onProgress(done, total int) {
	if !a.progress {
		return
	}
	if done == 1 || a.bar == nil {
		a.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Checking products"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	a.bar.Set(done)
}

// Close gracefully shuts down the application and all its resources.
// Any errors during shutdown are logged but do not prevent other shutdown steps.
func (a *Application) Close(ctx context.Context) error {
	log.Debug().Msg("Shutting down application")

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing fetcher")
		}
	}
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			log.Warn().Err(err).Msg("Error closing history")
		}
	}

	log.Debug().Dur("uptime", time.Since(a.startTime)).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
