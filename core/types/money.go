package types

import "github.com/shopspring/decimal"

// Dollars builds a decimal amount from whole currency units
func Dollars(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// Round2 rounds a monetary amount to 2 decimal places, half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundWhole rounds a monetary amount to whole currency units, half up.
func RoundWhole(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
