package store

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/internal/script"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	walmartPrice     = `span[itemprop="price"]`
	walmartStateVar  = "__WML_REDUX_INITIAL_STATE__"
	walmartAddToCart = `div[data-testid="add-to-cart-section"]`
)

// Walmart renders the price client-side on some layouts; when the price span is missing the
// value is read from the redux state assigned by an inline script.
type Walmart struct{}

// NewWalmart creates the walmart adapter
func NewWalmart() *Walmart { return &Walmart{} }

func (w *Walmart) Name() string { return "walmart" }

func (w *Walmart) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, w.Name(), "h1#main-title")
}

func (w *Walmart) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	if text, err := selectorText(doc, w.Name(), "price", walmartPrice); err == nil {
		if content, ok := doc.Find(walmartPrice).First().Attr("content"); ok && content != "" {
			text = content
		}
		return parseOrUnavailable(w.Name(), text)
	}

	globals := script.Globals(doc)
	value, ok := script.Lookup(globals, walmartStateVar, "product", "priceInfo", "currentPrice", "price")
	if !ok {
		log.Debug().Str("store", w.Name()).Msg("No price in page or script state, marking unavailable")
		return models.UnavailablePrice
	}
	return parseOrUnavailable(w.Name(), fmt.Sprint(value))
}

func (w *Walmart) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return stockFromText(doc, w.Name(), walmartAddToCart)
}
