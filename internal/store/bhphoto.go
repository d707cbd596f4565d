package store

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

// BHPhoto tags its product fields with data-selenium attributes rather than classes.
type BHPhoto struct{}

// NewBHPhoto creates the bhphotovideo adapter
func NewBHPhoto() *BHPhoto { return &BHPhoto{} }

func (b *BHPhoto) Name() string { return "bhphotovideo" }

func (b *BHPhoto) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, b.Name(), `h1[data-selenium="productTitle"]`)
}

func (b *BHPhoto) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	return priceOrUnavailable(doc, b.Name(), `div[data-selenium="pricingPrice"]`)
}

func (b *BHPhoto) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return stockFromText(doc, b.Name(), `div[data-selenium="addToCartSection"]`)
}
