package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrRequestCompletionCommandIsNotConstructed = errors.New(
	"RequestCompletionCommand must be created via NewRequestCompletionCommand constructor",
)

// RequestCompletionCommand reports an ACTIVE order as done by its worker.
type RequestCompletionCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRequestCompletionCommand(actor kernel.Actor, workOrderID kernel.UUID) (RequestCompletionCommand, error) {
	if err := errors.Join(actor.Validate(), workOrderID.Validate()); err != nil {
		return RequestCompletionCommand{}, err
	}

	return RequestCompletionCommand{
		actor:       actor,
		workOrderID: workOrderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RequestCompletionCommand) Validate() error {
	return c.guard.Validate(ErrRequestCompletionCommandIsNotConstructed)
}

func (c RequestCompletionCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RequestCompletionCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}
