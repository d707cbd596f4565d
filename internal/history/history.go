// Package history appends cycle results to persistent logs.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/law-makers/pricewatch/pkg/models"
)

// Columns is the column order shared by every sink
var Columns = []string{"URL", "ALERT_PRICE", "CHECK_STOCK", "TITLE", "PRICE", "STOCK", "ALERT"}

// Sink persists the records of one successful cycle
type Sink interface {
	Append(ctx context.Context, checkedAt time.Time, records []models.EvaluatedRecord) error
	Close() error
}

// Row flattens a record into the shared column order. The unavailable price and a stock
// state that was not checked become empty cells.
func Row(r models.EvaluatedRecord) []string {
	price := ""
	if !models.IsUnavailable(r.Price) {
		price = r.Price.String()
	}
	return []string{
		r.URL,
		r.AlertPrice.String(),
		boolString(r.CheckStock),
		r.Title,
		price,
		r.Stock.String(),
		boolString(r.Alert),
	}
}

func boolString(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Multi fans a cycle out to several sinks, attempting all of them
type Multi []Sink

func (m Multi) Append(ctx context.Context, checkedAt time.Time, records []models.EvaluatedRecord) error {
	var errs []error
	for _, s := range m {
		if err := s.Append(ctx, checkedAt, records); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
