package store

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
)

const gamenerdzFormAction = "div.form-action"

// GameNerdz swaps the add-to-cart input for a "Set Restock Notification" link when an item
// sells out, so the stock signal is either link text or an input value.
type GameNerdz struct{}

// NewGameNerdz creates the gamenerdz adapter
func NewGameNerdz() *GameNerdz { return &GameNerdz{} }

func (g *GameNerdz) Name() string { return "gamenerdz" }

func (g *GameNerdz) ExtractTitle(doc *goquery.Document) string {
	return titleOrPlaceholder(doc, g.Name(), "h1.productView-title")
}

func (g *GameNerdz) ExtractPrice(doc *goquery.Document) decimal.Decimal {
	return priceOrUnavailable(doc, g.Name(), "span.price.price--withoutTax")
}

func (g *GameNerdz) ExtractStock(doc *goquery.Document) (models.StockState, error) {
	action := doc.Find(gamenerdzFormAction).First()
	if action.Length() == 0 {
		return models.StockNotApplicable, &MissingElementError{Store: g.Name(), Field: "stock", Selector: gamenerdzFormAction}
	}

	parts := []string{action.Text()}
	action.Find("input[type=submit], button").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("value"); ok {
			parts = append(parts, v)
		}
	})
	return ClassifyStockText(strings.Join(parts, " ")), nil
}
