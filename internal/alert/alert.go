// Package alert decides which observations are worth telling someone about.
package alert

import "github.com/law-makers/pricewatch/pkg/models"

// Classification is the reason a record is (or is not) interesting
type Classification int

const (
	NoChange Classification = iota
	AtThreshold
	Restock
	Drop
)

func (c Classification) String() string {
	switch c {
	case Drop:
		return "drop"
	case Restock:
		return "restock"
	case AtThreshold:
		return "at-threshold"
	default:
		return "no-change"
	}
}

// Notable reports whether the classification warrants an email
func (c Classification) Notable() bool {
	return c == Drop || c == Restock
}

// Evaluation pairs a record with its classification
type Evaluation struct {
	Record models.EvaluatedRecord
	Class  Classification
}

// Classify applies the rules in priority order: a price below threshold beats a restock,
// which beats a price exactly at threshold.
func Classify(r models.EvaluatedRecord) Classification {
	switch {
	case r.Alert:
		return Drop
	case r.Stock == models.StockIn:
		return Restock
	case r.Price.Equal(r.AlertPrice):
		return AtThreshold
	default:
		return NoChange
	}
}

// Evaluate classifies every record, keeping input order
func Evaluate(records []models.EvaluatedRecord) []Evaluation {
	evals := make([]Evaluation, len(records))
	for i, r := range records {
		evals[i] = Evaluation{Record: r, Class: Classify(r)}
	}
	return evals
}

// ShouldNotify is true when mail is enabled and at least one record dropped below its
// threshold or is in stock
func ShouldNotify(sendMail bool, records []models.EvaluatedRecord) bool {
	if !sendMail {
		return false
	}
	for _, r := range records {
		if Classify(r).Notable() {
			return true
		}
	}
	return false
}
