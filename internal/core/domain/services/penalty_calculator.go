package services

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// PenaltyPercentPerDay is deducted from the value for every started day of lateness.
const PenaltyPercentPerDay = 3

const day = 24 * time.Hour

// PenaltyCalculator settles an approved completion.
//
// Business rules:
//   - approval at or before the deadline is on time and keeps the full value
//   - otherwise days late is the number of started 24h periods past the deadline, at least 1
//   - penalty percentage is days late × PenaltyPercentPerDay and is recorded as is
//   - penalty amount is capped at the value, so the final value never drops below zero
//
// Example usage:
//
//	calc := NewPenaltyCalculator()
//	settlement, err := calc.Settle(order.Deadline(), now, order.Value())
//	if err != nil {
//	    return err
//	}
//	err = order.ApproveCompletion(actor, settlement, now)
type PenaltyCalculator struct{}

func NewPenaltyCalculator() PenaltyCalculator {
	return PenaltyCalculator{}
}

// Settle computes the settlement for value when completion is approved at now.
func (PenaltyCalculator) Settle(deadline, now time.Time, value kernel.Money) (workorder.Settlement, error) {
	if err := value.Validate(); err != nil {
		return workorder.Settlement{}, err
	}

	if !now.After(deadline) {
		return workorder.NewSettlement(value, 0, 0, kernel.ZeroMoney(), value)
	}

	daysLate := DaysLate(deadline, now)
	percentage := daysLate * PenaltyPercentPerDay
	penalty := value.Percent(percentage).Min(value)

	return workorder.NewSettlement(value, daysLate, percentage, penalty, value.Sub(penalty))
}

// DaysLate returns the number of started days between deadline and now, 0 when
// now is not after deadline.
func DaysLate(deadline, now time.Time) int {
	if !now.After(deadline) {
		return 0
	}
	late := now.Sub(deadline)
	days := int(late / day)
	if late%day != 0 {
		days++
	}
	return days
}
