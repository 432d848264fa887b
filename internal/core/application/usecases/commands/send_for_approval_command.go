package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrSendForApprovalCommandIsNotConstructed = errors.New(
	"SendForApprovalCommand must be created via NewSendForApprovalCommand constructor",
)

// SendForApprovalCommand offers a DRAFT work order to its assigned worker.
//
// Example:
//
//	cmd, err := NewSendForApprovalCommand(admin, orderID)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type SendForApprovalCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewSendForApprovalCommand(actor kernel.Actor, workOrderID kernel.UUID) (SendForApprovalCommand, error) {
	if err := errors.Join(actor.Validate(), workOrderID.Validate()); err != nil {
		return SendForApprovalCommand{}, err
	}

	return SendForApprovalCommand{
		actor:       actor,
		workOrderID: workOrderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c SendForApprovalCommand) Validate() error {
	return c.guard.Validate(ErrSendForApprovalCommandIsNotConstructed)
}

func (c SendForApprovalCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SendForApprovalCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}
