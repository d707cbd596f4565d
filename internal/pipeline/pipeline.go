// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/law-makers/pricewatch/internal/engine"
	"github.com/law-makers/pricewatch/internal/reqctx"
	"github.com/law-makers/pricewatch/internal/retry"
	"github.com/law-makers/pricewatch/internal/store"
	"github.com/law-makers/pricewatch/pkg/models"
)

// Pipeline turns a product list into evaluated records, one page at a time
type Pipeline struct {
	registry *store.Registry
	fetcher  engine.Fetcher
	retry    retry.Config
	progress func(done, total int)
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRetry overrides the batch retry policy
func WithRetry(cfg retry.Config) Option {
	return func(p *Pipeline) { p.retry = cfg }
}

// WithProgress registers a callback invoked after every processed product
func WithProgress(fn func(done, total int)) Option {
	return func(p *Pipeline) { p.progress = fn }
}

// New creates a Pipeline
func New(registry *store.Registry, fetcher engine.Fetcher, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: registry,
		fetcher:  fetcher,
		retry:    retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProductError ties a failure to the product that caused it
type ProductError struct {
	Index int
	URL   string
	Err   error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("product %d (%s): %v", e.Index+1, e.URL, e.Err)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}

// ProcessBatch extracts every product in order. A failure anywhere aborts the attempt and
// the whole list is processed again after the retry backoff; records are only returned when
// one attempt got through every product.
func (p *Pipeline) ProcessBatch(ctx context.Context, products []models.TrackedProduct) ([]models.EvaluatedRecord, error) {
	logger := reqctx.Logger(ctx)

	var records []models.EvaluatedRecord
	err := retry.WithRetry(ctx, p.retry, func(attempt int) error {
		logger.Debug().
			Int("attempt", attempt+1).
			Int("products", len(products)).
			Msg("Processing batch")

		out, err := p.processOnce(ctx, products)
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt+1).Msg("Batch attempt failed")
			return err
		}
		records = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *Pipeline) processOnce(ctx context.Context, products []models.TrackedProduct) ([]models.EvaluatedRecord, error) {
	records := make([]models.EvaluatedRecord, 0, len(products))

	for i, product := range products {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := p.Process(ctx, product)
		if err != nil {
			return nil, &ProductError{Index: i, URL: product.URL, Err: err}
		}
		records = append(records, record)

		if p.progress != nil {
			p.progress(i+1, len(products))
		}
	}

	return records, nil
}

// Process fetches and extracts a single product
func (p *Pipeline) Process(ctx context.Context, product models.TrackedProduct) (models.EvaluatedRecord, error) {
	adapter, err := p.registry.Resolve(product.URL)
	if err != nil {
		return models.EvaluatedRecord{}, err
	}

	content, err := p.fetcher.Fetch(ctx, product.URL)
	if err != nil {
		return models.EvaluatedRecord{}, err
	}

	return Extract(adapter, product, content)
}

// Extract builds a record from already fetched page content. Title, price and stock are
// extracted independently; field failures are joined so none hides another.
func Extract(adapter store.Adapter, product models.TrackedProduct, content string) (models.EvaluatedRecord, error) {
	doc, err := store.ParsePage(content)
	if err != nil {
		return models.EvaluatedRecord{}, err
	}

	title := adapter.ExtractTitle(doc)
	price := adapter.ExtractPrice(doc)

	var errs []error
	stock := models.StockNotApplicable
	if product.CheckStock {
		if stock, err = adapter.ExtractStock(doc); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return models.EvaluatedRecord{}, err
	}
	return models.NewRecord(product, title, price, stock), nil
}
