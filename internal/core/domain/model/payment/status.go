package payment

import (
	"fmt"

	"workorders/internal/pkg/errs"
)

// Status is the settlement status of a completed work order.
type Status string

const (
	Pending Status = "pending"
	Paid    Status = "paid"
)

// ParseStatus accepts "pending" or "paid".
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate accepts only the declared statuses.
func (s Status) Validate() error {
	if s != Pending && s != Paid {
		return errs.NewValueIsInvalidErrorWithCause("payment status", fmt.Errorf("%q is not pending or paid", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
