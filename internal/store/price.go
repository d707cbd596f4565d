package store

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberPattern finds the first number-like run: digit groups joined by single grouping or
// decimal separators (including the no-break spaces some locales group with)
var numberPattern = regexp.MustCompile(`\d+(?:[.,'\x{00a0}\x{202f}]\d+)*`)

// ParsePrice extracts a decimal amount from a store price fragment such as "$1,299.99",
// "Now $24.88", "1.299,00 €" or "CHF 1'299.-". It reports false when no amount is present.
func ParsePrice(text string) (decimal.Decimal, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return decimal.Decimal{}, false
	}

	digits := strings.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u202f', '\'':
			return -1
		}
		return r
	}, match)

	amount, err := decimal.NewFromString(normalizeSeparators(digits))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// normalizeSeparators rewrites a digit run into the "1234.56" form
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// Whichever separator comes last is the decimal mark
		if lastDot > lastComma {
			return strings.ReplaceAll(s, ",", "")
		}
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)

	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 == 2 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")

	case lastDot >= 0:
		// A single dot before exactly three digits groups thousands, as in "1.299 €"
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			return strings.ReplaceAll(s, ".", "")
		}
		return s
	}
	return s
}
