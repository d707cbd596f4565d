package store

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

// Newegg reads the buy box; sold-out items show "Sold Out" or "Auto Notify" there.
type Newegg struct{}

// NewNewegg creates the newegg adapter
func NewNewegg() *Newegg { return &Newegg{} }

func (n *Newegg) Name() string { return "newegg" }

func (n *Newegg) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, n.Name(), "h1.product-title")
}

func (n *Newegg) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	return priceOrUnavailable(doc, n.Name(), "li.price-current")
}

func (n *Newegg) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return stockFromText(doc, n.Name(), "div.product-buy")
}
