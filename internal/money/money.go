// Package money provides the exact-decimal arithmetic shared by the budget
// engine. All monetary values are shopspring decimals; binary floating point
// is never used for amounts.
package money

import "github.com/shopspring/decimal"

// warnRatio is the fraction of a ceiling at which advisory warnings fire.
var warnRatio = decimal.RequireFromString("0.9")

// hundred is the percentage multiplier.
var hundred = decimal.NewFromInt(100)

// Sum adds the given amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// WarnLine returns the 90% warning line for a ceiling.
func WarnLine(ceiling decimal.Decimal) decimal.Decimal {
	return ceiling.Mul(warnRatio)
}

// Percentage returns part as a percentage of total, rounded half-up to two
// decimal places. The caller must ensure total is non-zero.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).DivRound(total, 2)
}
