package models

import (
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "CHF"

// CentsToDecimal converts an amount in minor units into a decimal.
func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatCents renders an amount in minor units as "CHF 85.00".
func FormatCents(cents int64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + CentsToDecimal(cents).StringFixed(2)
}
