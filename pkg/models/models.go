package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderTitle is used when a page has no recognisable title element.
const PlaceholderTitle = "Unknown Product"

// UnavailablePrice marks a product whose price could not be read (usually out of stock).
// It is far above any real threshold so it never triggers a drop alert.
var UnavailablePrice = decimal.New(1, 15)

// IsUnavailable reports whether price is the unavailable sentinel.
func IsUnavailable(price decimal.Decimal) bool {
	return price.Equal(UnavailablePrice)
}

// StockState is the tri-state availability of a product
type StockState int

const (
	StockNotApplicable StockState = iota
	StockOut
	StockIn
)

// String returns the history/log representation of the state
func (s StockState) String() string {
	switch s {
	case StockIn:
		return "true"
	case StockOut:
		return "false"
	default:
		return ""
	}
}

// TrackedProduct is one row of the product list, immutable for the duration of a cycle
type TrackedProduct struct {
	URL        string          `json:"url"`
	Store      string          `json:"store"`
	AlertPrice decimal.Decimal `json:"alert_price"`
	CheckStock bool            `json:"check_stock"`
}

// Observation is what a single cycle extracted from a product page
type Observation struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Stock StockState      `json:"stock"`
	Alert bool            `json:"alert"`
}

// EvaluatedRecord joins a tracked product with its latest observation
type EvaluatedRecord struct {
	TrackedProduct
	Observation
}

// NewRecord builds a record and computes the alert flag. The flag is computed even for the
// unavailable sentinel, which can never be below a valid threshold.
func NewRecord(p TrackedProduct, title string, price decimal.Decimal, stock StockState) EvaluatedRecord {
	return EvaluatedRecord{
		TrackedProduct: p,
		Observation: Observation{
			Title: title,
			Price: price,
			Stock: stock,
			Alert: price.LessThan(p.AlertPrice),
		},
	}
}

// CycleResult summarises one pass over the product list
type CycleResult struct {
	CycleID   string            `json:"cycle_id"`
	StartedAt time.Time         `json:"started_at"`
	Duration  time.Duration     `json:"duration"`
	Records   []EvaluatedRecord `json:"records"`
	Notified  bool              `json:"notified"`
}
