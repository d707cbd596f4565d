// Package store holds the per-store extraction adapters and the registry that selects them.
package store

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Adapter extracts the normalized fields from one store's product page.
//
// ExtractTitle and ExtractPrice never fail: a missing title yields models.PlaceholderTitle
// and a missing price yields models.UnavailablePrice. ExtractStock returns
// models.StockNotApplicable for stores without a stock signal and a *MissingElementError
// when a store that has one does not show it.
type Adapter interface {
	// Name returns the store identifier the adapter is registered under
	Name() string

	ExtractTitle(doc *goquery.Document) string
	ExtractPrice(doc *goquery.Document) decimal.Decimal
	ExtractStock(doc *goquery.Document) (models.StockState, error)
}

// ParsePage parses raw page content once so every field query shares the same document
func ParsePage(content string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// selectorText returns the trimmed text of the first element matching selector
func selectorText(doc *goquery.Document, store, field, selector string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", &MissingElementError{Store: store, Field: field, Selector: selector}
	}
	return collapseSpace(sel.Text()), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// titleOrPlaceholder applies the title fallback
func titleOrPlaceholder(doc *goquery.Document, store, selector string) string {
	title, err := selectorText(doc, store, "title", selector)
	if err != nil || title == "" {
		log.Debug().Str("store", store).Str("selector", selector).Msg("Title not found, using placeholder")
		return models.PlaceholderTitle
	}
	return title
}

// priceOrUnavailable applies the price fallback to a single-element price
func priceOrUnavailable(doc *goquery.Document, store, selector string) decimal.Decimal {
	text, err := selectorText(doc, store, "price", selector)
	if err != nil {
		log.Debug().Str("store", store).Str("selector", selector).Msg("Price element not found, marking unavailable")
		return models.UnavailablePrice
	}
	return parseOrUnavailable(store, text)
}

func parseOrUnavailable(store, text string) decimal.Decimal {
	price, ok := ParsePrice(text)
	if !ok {
		log.Debug().Str("store", store).Str("text", text).Msg("Price text not parseable, marking unavailable")
		return models.UnavailablePrice
	}
	return price
}

// stockFromText reads the stock signal element and classifies its text
func stockFromText(doc *goquery.Document, store, selector string) (models.StockState, error) {
	text, err := selectorText(doc, store, "stock", selector)
	if err != nil {
		return models.StockNotApplicable, err
	}
	return ClassifyStockText(text), nil
}
