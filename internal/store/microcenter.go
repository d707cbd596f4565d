package store

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

const microcenterPricing = "span#pricing"

// Microcenter exposes the machine-readable price in the content attribute of #pricing.
type Microcenter struct{}

// NewMicrocenter creates the microcenter adapter
func NewMicrocenter() *Microcenter { return &Microcenter{} }

func (m *Microcenter) Name() string { return "microcenter" }

func (m *Microcenter) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, m.Name(), "h1 span[data-name]")
}

func (m *Microcenter) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	if content, ok := doc.Find(microcenterPricing).First().Attr("content"); ok {
		if price, ok := ParsePrice(content); ok {
			return price
		}
	}
	return priceOrUnavailable(doc, m.Name(), microcenterPricing)
}

func (m *Microcenter) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return stockFromText(doc, m.Name(), "span.inventoryCnt")
}
