package report

import (
	"strings"
	"testing"

	"github.com/law-makers/pricewatch/internal/alert"
	"github.com/law-makers/pricewatch/internal/ui"
	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func rec(url, title string, price decimal.Decimal, threshold string, stock models.StockState) models.EvaluatedRecord {
	return models.NewRecord(models.TrackedProduct{
		URL:        url,
		AlertPrice: decimal.RequireFromString(threshold),
		CheckStock: stock != models.StockNotApplicable,
	}, title, price, stock)
}

func TestBlock_PriceDrop(t *testing.T) {
	r := rec("https://www.amazon.com/dp/X", "Wireless Mouse", decimal.RequireFromString("89.99"), "100.00", models.StockNotApplicable)

	want := "URL:    https://www.amazon.com/dp/X\n" +
		"TITLE:  Wireless Mouse\n" +
		"PRICE:  89.99\n"
	assert.Equal(t, want, Block(r))
}

func TestBlock_SoldOutUnavailable(t *testing.T) {
	r := rec("https://www.newegg.com/p/1", "GPU", models.UnavailablePrice, "500", models.StockOut)

	want := "URL:    https://www.newegg.com/p/1\n" +
		"TITLE:  GPU\n" +
		"PRICE:  OUT OF STOCK\n" +
		"STOCK:  SOLD OUT\n"
	assert.Equal(t, want, Block(r))
}

func TestProject_HidesInternalFields(t *testing.T) {
	r := rec("https://www.bestbuy.com/x", "TV", decimal.RequireFromString("120"), "100", models.StockIn)

	var labels []string
	for _, f := range Project(r) {
		labels = append(labels, f.Label)
	}
	assert.Equal(t, []string{"URL", "TITLE", "PRICE", "STOCK"}, labels)
	assert.Equal(t, "IN STOCK", Project(r)[3].Value)
}

func TestFormatPrice_TwoDecimals(t *testing.T) {
	r := rec("u", "t", decimal.RequireFromString("100"), "1", models.StockNotApplicable)
	assert.Equal(t, "100.00", FormatPrice(r))
}

func TestConsole_Colours(t *testing.T) {
	evals := alert.Evaluate([]models.EvaluatedRecord{
		rec("a", "drop", decimal.RequireFromString("89.99"), "100", models.StockNotApplicable),
		rec("b", "threshold", decimal.RequireFromString("100"), "100", models.StockNotApplicable),
		rec("c", "sold out", models.UnavailablePrice, "100", models.StockOut),
	})

	out := NewRenderer(false).Console(evals)
	blocks := strings.Split(strings.TrimSuffix(out, "\n\n"), "\n\n")
	assert.Len(t, blocks, 3)
	assert.True(t, strings.HasPrefix(blocks[0], ui.ColorBold+ui.ColorLightGreen))
	assert.True(t, strings.HasPrefix(blocks[1], ui.ColorBold+ui.ColorLightYellow))
	assert.True(t, strings.HasPrefix(blocks[2], ui.ColorBold+ui.ColorRed))
}

func TestConsole_NoColor(t *testing.T) {
	evals := alert.Evaluate([]models.EvaluatedRecord{
		rec("a", "one", decimal.RequireFromString("1"), "100", models.StockNotApplicable),
		rec("b", "two", decimal.RequireFromString("200"), "100", models.StockNotApplicable),
	})

	out := NewRenderer(true).Console(evals)
	assert.NotContains(t, out, "\033[")
	assert.Equal(t, Block(evals[0].Record)+"\n"+Block(evals[1].Record)+"\n", out)
}

func TestEmail_OnlyNotable(t *testing.T) {
	drop := rec("a", "drop", decimal.RequireFromString("89.99"), "100", models.StockNotApplicable)
	restock := rec("b", "restock", decimal.RequireFromString("150"), "100", models.StockIn)
	soldOut := rec("c", "sold out", models.UnavailablePrice, "100", models.StockOut)

	msg, ok := NewRenderer(false).Email(alert.Evaluate([]models.EvaluatedRecord{drop, soldOut, restock}))
	assert.True(t, ok)
	assert.Equal(t, EmailSubject, msg.Subject)
	assert.Equal(t, Block(drop)+Block(restock), msg.Body)
	assert.NotContains(t, msg.Body, "sold out")
	assert.NotContains(t, msg.Body, "\033[")
}

func TestEmail_NothingNotable(t *testing.T) {
	msg, ok := NewRenderer(false).Email(alert.Evaluate([]models.EvaluatedRecord{
		rec("c", "sold out", models.UnavailablePrice, "100", models.StockOut),
	}))
	assert.False(t, ok)
	assert.Empty(t, msg.Body)
}
