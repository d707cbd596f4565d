package store

import (
	"testing"

	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStockText(t *testing.T) {
	tests := map[string]models.StockState{
		"Sold Out":                           models.StockOut,
		"  SOLD   OUT  ":                     models.StockOut,
		"Coming Soon":                        models.StockOut,
		"Set Restock Notification":           models.StockOut,
		"Currently unavailable.":             models.StockOut,
		"Auto Notify":                        models.StockOut,
		"Add to Cart":                        models.StockIn,
		"In Stock.":                          models.StockIn,
		"25+ NEW IN STOCK at Tustin":         models.StockIn,
		"Only 2 left in stock - order soon.": models.StockIn,
	}
	for text, want := range tests {
		assert.Equal(t, want, ClassifyStockText(text), "text %q", text)
	}
}
