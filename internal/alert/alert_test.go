package alert

import (
	"testing"

	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func record(price, threshold string, stock models.StockState) models.EvaluatedRecord {
	p := models.UnavailablePrice
	if price != "" {
		p = decimal.RequireFromString(price)
	}
	return models.NewRecord(models.TrackedProduct{
		URL:        "https://www.amazon.com/dp/X",
		AlertPrice: decimal.RequireFromString(threshold),
		CheckStock: stock != models.StockNotApplicable,
	}, "Thing", p, stock)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		record models.EvaluatedRecord
		want   Classification
	}{
		{"drop", record("89.99", "100", models.StockNotApplicable), Drop},
		{"drop beats restock", record("89.99", "100", models.StockIn), Drop},
		{"restock above threshold", record("120", "100", models.StockIn), Restock},
		{"restock at threshold", record("100", "100", models.StockIn), Restock},
		{"at threshold", record("100.00", "100", models.StockNotApplicable), AtThreshold},
		{"at threshold sold out", record("100", "100", models.StockOut), AtThreshold},
		{"above threshold", record("120", "100", models.StockNotApplicable), NoChange},
		{"sold out", record("150", "100", models.StockOut), NoChange},
		{"unavailable", record("", "100", models.StockOut), NoChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.record))
		})
	}
}

func TestClassification_Notable(t *testing.T) {
	assert.True(t, Drop.Notable())
	assert.True(t, Restock.Notable())
	assert.False(t, AtThreshold.Notable())
	assert.False(t, NoChange.Notable())
	assert.Equal(t, "at-threshold", AtThreshold.String())
}

func TestEvaluate_KeepsOrder(t *testing.T) {
	records := []models.EvaluatedRecord{
		record("150", "100", models.StockOut),
		record("89.99", "100", models.StockNotApplicable),
		record("100", "100", models.StockNotApplicable),
	}

	evals := Evaluate(records)
	assert.Len(t, evals, 3)
	assert.Equal(t, []Classification{NoChange, Drop, AtThreshold},
		[]Classification{evals[0].Class, evals[1].Class, evals[2].Class})
	for i := range records {
		assert.Equal(t, records[i], evals[i].Record)
	}
}

func TestShouldNotify(t *testing.T) {
	drop := []models.EvaluatedRecord{record("89.99", "100", models.StockNotApplicable)}
	restock := []models.EvaluatedRecord{record("150", "100", models.StockIn)}
	quiet := []models.EvaluatedRecord{
		record("150", "100", models.StockOut),
		record("100", "100", models.StockNotApplicable),
	}

	assert.True(t, ShouldNotify(true, drop))
	assert.True(t, ShouldNotify(true, restock))
	assert.False(t, ShouldNotify(true, quiet))
	assert.False(t, ShouldNotify(false, drop))
	assert.False(t, ShouldNotify(true, nil))
}
