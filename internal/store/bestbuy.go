package store

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

// BestBuy repeats the price in screen-reader text ("Your price for this item is ..."),
// so only the first amount of the hero price block is used.
type BestBuy struct{}

// NewBestBuy creates the bestbuy adapter
func NewBestBuy() *BestBuy { return &BestBuy{} }

func (b *BestBuy) Name() string { return "bestbuy" }

func (b *BestBuy) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, b.Name(), "div.sku-title")
}

func (b *BestBuy) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	return priceOrUnavailable(doc, b.Name(), "div.priceView-hero-price.priceView-customer-price")
}

func (b *BestBuy) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	return stockFromText(doc, b.Name(), "button.add-to-cart-button")
}
