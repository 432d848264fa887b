package kernel

import (
	"errors"
	"fmt"

	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MinorUnitPlaces is the number of decimal places an amount may carry. It
// matches the scale of the stored numeric columns.
const MinorUnitPlaces = 2

// ErrMoneyIsNotConstructed is returned by Validate on a zero Money.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// Money is a non-negative amount in the single currency the service settles in.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rejects negative amounts and amounts finer than MinorUnitPlaces.
// Zero is allowed because a settled value may be fully consumed by the
// penalty. Trailing zeros do not count, so "10.500" is accepted as 10.50.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()),
		)
	}
	if !amount.Equal(amount.Truncate(MinorUnitPlaces)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s has more than %d decimal places", amount.String(), MinorUnitPlaces),
		)
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromString parses a decimal literal such as "1000000" or "1500.50".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%q is not numeric", s))
	}
	return NewMoney(amount)
}

// MoneyFromInt is a convenience for whole amounts.
func MoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate reports whether m was built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount exposes the exact decimal value, for persistence and JSON.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares amounts numerically, so 10.5 equals 10.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Percent returns pct percent of m, rounded half away from zero to
// MinorUnitPlaces. 3 percent of 333.33 is 10.
func (m Money) Percent(pct int) Money {
	part := m.amount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(MinorUnitPlaces)
	return Money{amount: part, guard: guard.NewConstructorGuard()}
}

// Sub subtracts other from m, flooring the result at zero.
func (m Money) Sub(other Money) Money {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		diff = decimal.Zero
	}
	return Money{amount: diff, guard: guard.NewConstructorGuard()}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other.LessThan(m) {
		return other
	}
	return m
}

// String formats the amount without trailing zeros, e.g. "1500.5".
func (m Money) String() string {
	return m.amount.String()
}
