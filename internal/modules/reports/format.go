// Package reports renders analysis results as HTML email and PDF documents
// and hands emails to the mailer.
package reports

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency formats whole dollars with thousands grouping, e.g. "$1,346,848".
// Negative amounts keep their sign.
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + printer.Sprint(number.Decimal(math.Abs(v), number.MaxFractionDigits(0)))
	}
	return "$" + printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
}

// FormatPercent formats a value already expressed in percent with one decimal, e.g. "26.1%".
func FormatPercent(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MinFractionDigits(1), number.MaxFractionDigits(1))) + "%"
}

// FormatRate formats a fractional rate as a percentage, e.g. 0.04 as "4.0%".
func FormatRate(rate float64) string {
	return FormatPercent(rate * 100)
}
