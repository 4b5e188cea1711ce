package kernel

import (
	"math"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MinorUnits is the number of fractional digits every externally visible
// amount is rounded to.
const MinorUnits int32 = 2

// Money is a non-negative amount in the marketplace currency with at most
// MinorUnits fractional digits, which is also what storage keeps. Arithmetic
// is exact; Round applies banker's rounding to MinorUnits places.
//
// The zero value is a valid amount of 0.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns an amount of 0.
func ZeroMoney() Money {
	return Money{}
}

// NewMoney wraps a decimal. Negative amounts and amounts finer than
// MinorUnits are rejected with errs.ErrInvalidAmount; trailing zeros such as
// "5.000" are fine.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewInvalidAmountError("amount", amount.String())
	}
	if !amount.Equal(amount.Truncate(MinorUnits)) {
		return Money{}, errs.NewInvalidAmountError("amount", amount.String())
	}
	return Money{amount: amount}, nil
}

// MoneyFromString parses a decimal string such as "19.99".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewInvalidAmountErrorWithCause("amount", s, err)
	}
	return NewMoney(d)
}

// MoneyFromFloat converts a float. NaN and infinities are rejected.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, errs.NewInvalidAmountError("amount", f)
	}
	return NewMoney(decimal.NewFromFloat(f))
}

// MoneyFromCents builds an amount from an integer number of minor units.
func MoneyFromCents(cents int64) (Money, error) {
	return NewMoney(decimal.New(cents, -MinorUnits))
}

// MustMoney is MoneyFromString for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// SubFloor subtracts other and floors the result at zero.
func (m Money) SubFloor(other Money) Money {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return Money{}
	}
	return Money{amount: diff}
}

// Times multiplies by a quantity. Callers validate that quantity is positive.
func (m Money) Times(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Round applies banker's rounding to MinorUnits places.
func (m Money) Round() Money {
	return Money{amount: m.amount.RoundBank(MinorUnits)}
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if m.amount.Cmp(other.amount) <= 0 {
		return m
	}
	return other
}

func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares numerically, so 5 and 5.00 are equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount rounded to MinorUnits places, e.g. "25.00".
func (m Money) String() string {
	return m.amount.StringFixedBank(MinorUnits)
}
