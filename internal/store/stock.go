package store

import (
	"strings"

	"github.com/law-makers/pricewatch/pkg/models"
)

// OutOfStockPhrases is the closed set of page phrases that mean a product cannot be bought.
// Any other text on a stock element is read as in stock.
var OutOfStockPhrases = []string{
	"sold out",
	"coming soon",
	"set restock notification",
	"out of stock",
	"currently unavailable",
	"notify me",
	"auto notify",
	"notify when available",
}

// ClassifyStockText maps stock element text to StockIn or StockOut
func ClassifyStockText(text string) models.StockState {
	normalized := strings.ToLower(collapseSpace(text))
	for _, phrase := range OutOfStockPhrases {
		if strings.Contains(normalized, phrase) {
			return models.StockOut
		}
	}
	return models.StockIn
}
