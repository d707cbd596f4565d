// Package catalog loads the list of tracked products.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	urlutil "github.com/law-makers/pricewatch/internal/utils/url"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

// Column names in the product list header
const (
	ColumnURL        = "URL"
	ColumnAlertPrice = "ALERT_PRICE"
	ColumnCheckStock = "CHECK_STOCK"
)

// ErrMissingColumn is matched when a required header is absent
var ErrMissingColumn = errors.New("missing required column")

// RowError points at the offending line of the product list
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Load reads the product list at path
func Load(path string) ([]models.TrackedProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product list: %w", err)
	}
	defer f.Close()

	products, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return products, nil
}

// Parse reads products from CSV. Columns are located by header name so their order does not
// matter; CHECK_STOCK may be omitted and defaults to false.
func Parse(r io.Reader) ([]models.TrackedProduct, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, ColumnURL)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{ColumnURL, ColumnAlertPrice} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var products []models.TrackedProduct
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read product list: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(row) {
			continue
		}

		p, err := parseRow(row, index)
		if err != nil {
			return nil, &RowError{Line: line, Err: err}
		}
		products = append(products, p)
	}

	return products, nil
}

func parseRow(row []string, index map[string]int) (models.TrackedProduct, error) {
	get := func(column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rawURL := get(ColumnURL)
	if err := urlutil.ValidateURL(rawURL); err != nil {
		return models.TrackedProduct{}, err
	}
	store, err := urlutil.StoreID(rawURL)
	if err != nil {
		return models.TrackedProduct{}, err
	}

	threshold, err := ParseThreshold(get(ColumnAlertPrice))
	if err != nil {
		return models.TrackedProduct{}, err
	}

	checkStock, err := ParseFlag(get(ColumnCheckStock))
	if err != nil {
		return models.TrackedProduct{}, fmt.Errorf("invalid %s: %w", ColumnCheckStock, err)
	}

	return models.TrackedProduct{
		URL:        rawURL,
		Store:      store,
		AlertPrice: threshold,
		CheckStock: checkStock,
	}, nil
}

// ParseThreshold parses an alert price. Negative values and values at or above the
// unavailable sentinel are rejected.
func ParseThreshold(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%s is empty", ColumnAlertPrice)
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "$"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", ColumnAlertPrice, s, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%s %s is negative", ColumnAlertPrice, s)
	}
	if d.GreaterThanOrEqual(models.UnavailablePrice) {
		return decimal.Decimal{}, fmt.Errorf("%s %s is out of range", ColumnAlertPrice, s)
	}
	return d, nil
}

// ParseFlag accepts the usual spreadsheet spellings of a boolean. Empty means false.
func ParseFlag(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "0", "false", "f", "no", "n":
		return false, nil
	case "1", "true", "t", "yes", "y":
		return true, nil
	}
	return false, fmt.Errorf("not a boolean: %q", s)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
