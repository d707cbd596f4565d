// Package report renders evaluated records for the terminal and for email.
package report

import (
	"fmt"
	"strings"

	"github.com/law-makers/pricewatch/internal/alert"
	"github.com/law-makers/pricewatch/internal/ui"
	"github.com/law-makers/pricewatch/pkg/models"
)

// EmailSubject is used for every alert mail
const EmailSubject = "Price/Stock Change Detected"

// OutOfStockPrice is shown instead of the unavailable price sentinel
const OutOfStockPrice = "OUT OF STOCK"

// Field is one labelled line of a record block
type Field struct {
	Label string
	Value string
}

// Message is a rendered email
type Message struct {
	Subject string
	Body    string
}

// Project picks the fields shown to a user. The threshold and the alert and check-stock flags
// are internal and never displayed; stock only appears when it was checked.
func Project(r models.EvaluatedRecord) []Field {
	fields := []Field{
		{Label: "URL", Value: r.URL},
		{Label: "TITLE", Value: r.Title},
		{Label: "PRICE", Value: FormatPrice(r)},
	}
	if r.Stock != models.StockNotApplicable {
		fields = append(fields, Field{Label: "STOCK", Value: FormatStock(r.Stock)})
	}
	return fields
}

// FormatPrice renders a price with two decimals or the out-of-stock marker
func FormatPrice(r models.EvaluatedRecord) string {
	if models.IsUnavailable(r.Price) {
		return OutOfStockPrice
	}
	return r.Price.StringFixed(2)
}

// FormatStock renders a checked stock state
func FormatStock(s models.StockState) string {
	switch s {
	case models.StockIn:
		return "IN STOCK"
	case models.StockOut:
		return "SOLD OUT"
	default:
		return ""
	}
}

// Block renders the projected fields of a record, one "LABEL:  value" line each
func Block(r models.EvaluatedRecord) string {
	var b strings.Builder
	for _, f := range Project(r) {
		b.WriteString(fmt.Sprintf("%-8s%s\n", f.Label+":", f.Value))
	}
	return b.String()
}

// Renderer produces console and email output
type Renderer struct {
	NoColor bool
}

// NewRenderer creates a Renderer
func NewRenderer(noColor bool) *Renderer {
	return &Renderer{NoColor: noColor}
}

// Console renders every evaluation, coloured by classification, with a blank line after
// each block
func (r *Renderer) Console(evals []alert.Evaluation) string {
	var b strings.Builder
	for _, e := range evals {
		block := Block(e.Record)
		if !r.NoColor {
			block = ui.Paint(block, ui.ColorBold, colorFor(e.Class))
		}
		b.WriteString(block)
		b.WriteString("\n")
	}
	return b.String()
}

// Email concatenates the blocks of notable evaluations. ok is false when nothing is notable.
func (r *Renderer) Email(evals []alert.Evaluation) (msg Message, ok bool) {
	var b strings.Builder
	for _, e := range evals {
		if e.Class.Notable() {
			b.WriteString(Block(e.Record))
		}
	}
	if b.Len() == 0 {
		return Message{}, false
	}
	return Message{Subject: EmailSubject, Body: b.String()}, true
}

func colorFor(c alert.Classification) string {
	switch c {
	case alert.Drop, alert.Restock:
		return ui.ColorLightGreen
	case alert.AtThreshold:
		return ui.ColorLightYellow
	default:
		return ui.ColorRed
	}
}
