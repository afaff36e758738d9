package kernel

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/pkg/errs"
)

// Money is an immutable monetary amount backed by arbitrary-precision decimals.
// The zero value is a valid amount of zero, which makes Money convenient to use
// as an accumulator for ledger sums.
//
// All marketplace monetary math (pricing, commissions, wallet balances) goes
// through Money so that rounding behavior stays in one place.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// NewMoneyFromFloat creates a Money from a float64 amount.
func NewMoneyFromFloat(v float64) Money {
	return Money{amount: decimal.NewFromFloat(v)}
}

// NewNonNegativeMoney creates a Money that must not be negative.
// Used for transaction amounts, which are unsigned by invariant.
func NewNonNegativeMoney(v float64) (Money, error) {
	if v < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", v, 0, "unbounded")
	}
	return NewMoneyFromFloat(v), nil
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// MulFloat returns the amount multiplied by a scalar.
func (m Money) MulFloat(f float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(f))}
}

// Percent returns p percent of the amount, rounded to 2 decimal places.
func (m Money) Percent(p float64) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromFloat(p)).Div(decimal.NewFromInt(100)).Round(2)}
}

// Round2 returns the amount rounded to 2 decimal places.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// FloorZero returns the amount, or zero when the amount is negative.
func (m Money) FloorZero() Money {
	if m.amount.IsNegative() {
		return Money{}
	}
	return m
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// GreaterThan reports whether the amount exceeds the other amount.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Float64 returns the amount as a float64 for presentation purposes.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String returns the fixed-point representation with 2 decimal places.
// Implements the fmt.Stringer interface.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
