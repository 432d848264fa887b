package queries

import (
	"errors"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrPayrollSummaryQueryIsNotConstructed = errors.New(
	"PayrollSummaryQuery must be created via NewPayrollSummaryQuery constructor",
)

// PayrollSummaryQuery totals, per worker, the orders completed in [from, to).
type PayrollSummaryQuery struct {
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

func NewPayrollSummaryQuery(from, to time.Time) (PayrollSummaryQuery, error) {
	if from.IsZero() {
		return PayrollSummaryQuery{}, errs.NewValueIsRequiredError("from")
	}
	if to.IsZero() {
		return PayrollSummaryQuery{}, errs.NewValueIsRequiredError("to")
	}
	if !from.Before(to) {
		return PayrollSummaryQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"period", fmt.Errorf("from %s is not before to %s", from.Format(time.RFC3339), to.Format(time.RFC3339)),
		)
	}

	return PayrollSummaryQuery{
		from:  from.UTC(),
		to:    to.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q PayrollSummaryQuery) Validate() error {
	return q.guard.Validate(ErrPayrollSummaryQueryIsNotConstructed)
}

func (q PayrollSummaryQuery) From() time.Time {
	return q.from
}

func (q PayrollSummaryQuery) To() time.Time {
	return q.to
}

// PayrollLine is one worker's share of a payroll period, or the grand total
// when WorkerID is the zero UUID.
type PayrollLine struct {
	WorkerID         kernel.UUID
	WorkerName       string
	Orders           int
	OnTime           int
	Late             int
	TotalOriginal    kernel.Money
	TotalPenalty     kernel.Money
	TotalFinal       kernel.Money
	TotalPaid        kernel.Money
	TotalOutstanding kernel.Money
}

type PayrollSummary struct {
	From   time.Time
	To     time.Time
	Lines  []PayrollLine
	Totals PayrollLine
}

// ParsePeriodBound reads a period bound given as an RFC 3339 timestamp or as
// a date, which means midnight UTC.
func ParsePeriodBound(name, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errs.NewValueIsRequiredError(name)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause(
		name, fmt.Errorf("%q is neither RFC 3339 nor YYYY-MM-DD", raw),
	)
}
