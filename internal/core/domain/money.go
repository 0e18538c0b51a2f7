package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is an amount in currency minor units (cents for most currencies).
// All engine arithmetic happens on Money; decimals only appear at the boundary.
type Money int64

var hundred = decimal.NewFromInt(100)

// Decimal converts the amount to a decimal in major units for the given currency.
func (m Money) Decimal(cur Currency) decimal.Decimal {
	return decimal.New(int64(m), -cur.Exponent)
}

// Format renders the amount with exactly the currency's number of fraction digits.
func (m Money) Format(cur Currency) string {
	return m.Decimal(cur).StringFixed(cur.Exponent)
}

// MoneyFromDecimal converts a major-unit decimal to minor units.
// Amounts carrying more fraction digits than the currency allows are rejected, not rounded.
func MoneyFromDecimal(d decimal.Decimal, cur Currency) (Money, error) {
	scaled := d.Shift(cur.Exponent)
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("must have at most %d decimal places", cur.Exponent)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("is out of range")
	}
	return Money(scaled.IntPart()), nil
}

// percentOf returns round(m * rate / 100), rounding half away from zero.
func percentOf(m Money, rate decimal.Decimal) Money {
	return Money(decimal.NewFromInt(int64(m)).Mul(rate).Div(hundred).Round(0).IntPart())
}

// mulQuantity returns m × q and reports whether the product fits in Money.
func mulQuantity(m Money, q int64) (Money, bool) {
	if m == 0 || q == 0 {
		return 0, true
	}
	if q == -1 && m == math.MinInt64 {
		return 0, false
	}
	p := m * Money(q)
	if p/Money(q) != m {
		return 0, false
	}
	return p, true
}

// addMoney returns a + b and reports whether the sum fits in Money.
func addMoney(a, b Money) (Money, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// sumMoney adds the values returned by amount for every element.
func sumMoney[T any](xs []T, amount func(T) Money) Money {
	var total Money
	for _, x := range xs {
		total += amount(x)
	}
	return total
}
