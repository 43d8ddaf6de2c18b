// Package money compares monetary amounts without floating-point drift.
package money

import "github.com/shopspring/decimal"

// Precision is the number of decimal places listing prices must be positive at.
const Precision int32 = 2

// Exceeds reports whether amount is strictly greater than current. Both are compared
// at their shortest decimal representation, with no rounding band.
func Exceeds(amount, current float64) bool {
	return decimal.NewFromFloat(amount).GreaterThan(decimal.NewFromFloat(current))
}

// Positive reports whether amount is greater than zero at Precision.
func Positive(amount float64) bool {
	return decimal.NewFromFloat(amount).Round(Precision).IsPositive()
}
