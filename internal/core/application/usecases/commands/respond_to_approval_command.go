package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrRespondToApprovalCommandIsNotConstructed = errors.New(
	"RespondToApprovalCommand must be created via NewRespondToApprovalCommand constructor",
)

// RespondToApprovalCommand carries the assigned worker's answer to a
// PENDING_APPROVAL order: accept moves it to ACTIVE, reject to REJECTED.
type RespondToApprovalCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID
	accept      bool

	guard guard.ConstructorGuard
}

func NewRespondToApprovalCommand(actor kernel.Actor, workOrderID kernel.UUID, accept bool) (RespondToApprovalCommand, error) {
	if err := errors.Join(actor.Validate(), workOrderID.Validate()); err != nil {
		return RespondToApprovalCommand{}, err
	}

	return RespondToApprovalCommand{
		actor:       actor,
		workOrderID: workOrderID,
		accept:      accept,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RespondToApprovalCommand) Validate() error {
	return c.guard.Validate(ErrRespondToApprovalCommandIsNotConstructed)
}

func (c RespondToApprovalCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RespondToApprovalCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c RespondToApprovalCommand) Accept() bool {
	return c.accept
}
