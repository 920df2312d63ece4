// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"github.com/shopspring/decimal"
)

// Display holds the presentation settings of a currency.
type Display struct {
	Singular         string
	Plural           string
	FractionalDigits int
}

// Format renders amount rounded to the currency fractional digits followed by
// the singular or plural currency name.
func (d Display) Format(amount decimal.Decimal) string {
	digits := int32(d.FractionalDigits)
	if digits < 0 {
		digits = 0
	}

	rounded := amount.Round(digits)

	name := d.Plural
	if rounded.Abs().Equal(decimal.NewFromInt(1)) {
		name = d.Singular
	}

	if name == "" {
		return rounded.StringFixed(digits)
	}

	return rounded.StringFixed(digits) + " " + name
}

// PlainString returns the exact base-10 representation of d, keeping its scale.
//
// decimal.Decimal.String drops trailing zeros ("20.00" becomes "20"); this does not.
func PlainString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}

	return d.String()
}
