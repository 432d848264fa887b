package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrApproveCompletionCommandIsNotConstructed = errors.New(
	"ApproveCompletionCommand must be created via NewApproveCompletionCommand constructor",
)

// ApproveCompletionCommand settles a COMPLETION_REQUESTED order. Lateness is
// measured at the moment the handler runs.
type ApproveCompletionCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveCompletionCommand(actor kernel.Actor, workOrderID kernel.UUID) (ApproveCompletionCommand, error) {
	if err := errors.Join(actor.Validate(), workOrderID.Validate()); err != nil {
		return ApproveCompletionCommand{}, err
	}

	return ApproveCompletionCommand{
		actor:       actor,
		workOrderID: workOrderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveCompletionCommand) Validate() error {
	return c.guard.Validate(ErrApproveCompletionCommandIsNotConstructed)
}

func (c ApproveCompletionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ApproveCompletionCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}
