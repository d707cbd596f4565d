package store

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	amazonTitle         = "span#productTitle"
	amazonPriceWhole    = "span.a-price-whole"
	amazonPriceFraction = "span.a-price-fraction"
	amazonAvailability  = "div#availability"
)

// Amazon splits the price into whole and fraction spans that must be joined.
type Amazon struct{}

// NewAmazon creates the amazon adapter
func NewAmazon() *Amazon { return &Amazon{} }

func (a *Amazon) Name() string { return "amazon" }

func (a *Amazon) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, a.Name(), amazonTitle)
}

func (a *Amazon) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	whole, err := selectorText(doc, a.Name(), "price", amazonPriceWhole)
	if err != nil {
		log.Debug().Err(err).Msg("Amazon price missing, marking unavailable")
		return models.UnavailablePrice
	}
	// The fraction span is occasionally omitted for whole-dollar prices
	fraction, _ := selectorText(doc, a.Name(), "price", amazonPriceFraction)
	return parseOrUnavailable(a.Name(), whole+fraction)
}

func (a *Amazon) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return stockFromText(doc, a.Name(), amazonAvailability)
}
