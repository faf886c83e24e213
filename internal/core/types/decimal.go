// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

var hundred = decimal.NewFromInt(100)

// Percent applies a percentage rate to a value: value * rate / 100.
// A rate of 18 means 18%.
func Percent(value, rate Money) Money {
	return value.Mul(rate).Div(hundred)
}

// Round2 rounds a Money value to 2 decimal places (half away from zero),
// the precision used for all customer-facing amounts.
func Round2(value Money) Money {
	return value.Round(2)
}

// Float2 converts a Money value to a float64 rounded to 2 decimal places.
// Used at the DTO boundary where JSON numbers are expected.
func Float2(value Money) float64 {
	f, _ := value.Round(2).Float64()
	return f
}

// SumFloat2 adds float64 amounts in decimal and rounds to 2 decimal places.
// Adding already-rounded floats directly can reintroduce binary artifacts
// (0.1 + 0.2 serializing as 0.30000000000000004).
func SumFloat2(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return Float2(sum)
}
