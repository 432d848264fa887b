package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/pkg/guard"
)

var ErrSetPaymentStatusCommandIsNotConstructed = errors.New(
	"SetPaymentStatusCommand must be created via NewSetPaymentStatusCommand constructor",
)

// SetPaymentStatusCommand sets the payment status of a completed order.
// Setting pending clears the payment date; setting paid keeps an existing one.
type SetPaymentStatusCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID
	status      payment.Status

	guard guard.ConstructorGuard
}

func NewSetPaymentStatusCommand(actor kernel.Actor, workOrderID kernel.UUID, status payment.Status) (SetPaymentStatusCommand, error) {
	if err := errors.Join(actor.Validate(), workOrderID.Validate(), status.Validate()); err != nil {
		return SetPaymentStatusCommand{}, err
	}

	return SetPaymentStatusCommand{
		actor:       actor,
		workOrderID: workOrderID,
		status:      status,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// NewMarkPaidCommand is SetPaymentStatus with the paid status. Repeating it is a no-op.
func NewMarkPaidCommand(actor kernel.Actor, workOrderID kernel.UUID) (SetPaymentStatusCommand, error) {
	return NewSetPaymentStatusCommand(actor, workOrderID, payment.Paid)
}

func (c SetPaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetPaymentStatusCommandIsNotConstructed)
}

func (c SetPaymentStatusCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SetPaymentStatusCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c SetPaymentStatusCommand) Status() payment.Status {
	return c.status
}
