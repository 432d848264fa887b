package workorder

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

// ErrSettlementIsNotConstructed is returned by Validate on a zero Settlement.
var ErrSettlementIsNotConstructed = errors.New("Settlement must be created via NewSettlement")

// Settlement is the payable outcome of an approved completion. It is computed
// once by the penalty calculator and stored on the order.
type Settlement struct {
	originalValue     kernel.Money
	daysLate          int
	penaltyPercentage int
	penaltyAmount     kernel.Money
	finalValue        kernel.Money
	guard             guard.ConstructorGuard
}

// NewSettlement checks that the parts are consistent: no penalty without
// lateness and final = original - penalty.
//
// Parameters:
//   - originalValue: the order value being settled
//   - daysLate: started days past the deadline, 0 when on time
//   - penaltyPercentage: 3 per late day, reported unclamped
//   - penaltyAmount: the deduction in money, at most originalValue
//   - finalValue: originalValue minus penaltyAmount
//
// Example:
//
//	value, _ := kernel.MoneyFromInt(1000000)
//	penalty := value.Percent(9)
//	s, err := NewSettlement(value, 3, 9, penalty, value.Sub(penalty))
//	// s.FinalValue() is 910000, s.TerminalState() is DoneLate
func NewSettlement(
	originalValue kernel.Money,
	daysLate int,
	penaltyPercentage int,
	penaltyAmount kernel.Money,
	finalValue kernel.Money,
) (Settlement, error) {
	if err := errors.Join(originalValue.Validate(), penaltyAmount.Validate(), finalValue.Validate()); err != nil {
		return Settlement{}, err
	}
	if daysLate < 0 {
		return Settlement{}, errs.NewValueIsOutOfRangeError("days late", daysLate, 0, "unbounded")
	}
	if penaltyPercentage < 0 {
		return Settlement{}, errs.NewValueIsOutOfRangeError("penalty percentage", penaltyPercentage, 0, "unbounded")
	}
	if daysLate == 0 && (penaltyPercentage != 0 || !penaltyAmount.IsZero()) {
		return Settlement{}, errs.NewValueIsInvalidErrorWithCause(
			"settlement", errors.New("an on-time settlement carries no penalty"),
		)
	}
	if !originalValue.Sub(penaltyAmount).IsEqual(finalValue) {
		return Settlement{}, errs.NewValueIsInvalidErrorWithCause(
			"settlement",
			fmt.Errorf("final value %s does not equal %s - %s", finalValue, originalValue, penaltyAmount),
		)
	}

	return Settlement{
		originalValue:     originalValue,
		daysLate:          daysLate,
		penaltyPercentage: penaltyPercentage,
		penaltyAmount:     penaltyAmount,
		finalValue:        finalValue,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the settlement was built by NewSettlement.
func (s Settlement) Validate() error {
	return s.guard.Validate(ErrSettlementIsNotConstructed)
}

// OriginalValue is the order value before the penalty.
func (s Settlement) OriginalValue() kernel.Money {
	return s.originalValue
}

// DaysLate counts the started 24 hour periods between the deadline and the
// approval. A single nanosecond late counts as one day.
func (s Settlement) DaysLate() int {
	return s.daysLate
}

// PenaltyPercentage is the deducted share of the value. It can exceed 100; the
// amount itself is capped.
func (s Settlement) PenaltyPercentage() int {
	return s.penaltyPercentage
}

// PenaltyAmount is the deduction, rounded to cents and capped at the original value.
func (s Settlement) PenaltyAmount() kernel.Money {
	return s.penaltyAmount
}

// FinalValue is what the worker is paid. Never negative.
func (s Settlement) FinalValue() kernel.Money {
	return s.finalValue
}

// OnTime reports whether the order was approved no later than its deadline.
func (s Settlement) OnTime() bool {
	return s.daysLate == 0
}

// TerminalState is the completed state the settlement resolves to.
func (s Settlement) TerminalState() State {
	if s.OnTime() {
		return DoneOnTime
	}
	return DoneLate
}
