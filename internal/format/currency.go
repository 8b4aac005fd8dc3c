// Package format provides pure display-formatting helpers for the dashboard:
// currency strings, localized dates, and chart axis labels.
//
// Amounts arrive in cents (the storage unit) and leave as strings ready for
// rendering. Nothing in this package touches the store.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Currency renders an amount in cents as a US dollar string with thousands
// separators and exactly two decimal places, e.g. Currency(1000000) ==
// "$10,000.00". Negative amounts (credits, adjustments) render as "-$1.00".
// It never fails: zero, negative, and values up to 2^53 cents all format.
func Currency(cents int64) string {
	d := decimal.New(cents, -2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	f, _ := d.Float64()
	s := usd.Sprint(number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
	if neg {
		return "-$" + s
	}
	return "$" + s
}
