package store

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

// CentralComputer pages carry no reliable stock signal.
type CentralComputer struct{}

// NewCentralComputer creates the centralcomputer adapter
func NewCentralComputer() *CentralComputer { return &CentralComputer{} }

func (c *CentralComputer) Name() string { return "centralcomputer" }

func (c *CentralComputer) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, c.Name(), "div.productname")
}

func (c *CentralComputer) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	return priceOrUnavailable(doc, c.Name(), "span.price")
}

func (c *CentralComputer) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return models.StockNotApplicable, nil
}
