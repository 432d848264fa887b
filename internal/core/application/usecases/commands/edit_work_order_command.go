package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrEditWorkOrderCommandIsNotConstructed = errors.New(
	"EditWorkOrderCommand must be created via NewEditWorkOrderCommand constructor",
)

// EditWorkOrderCommand changes the editable fields of a DRAFT order. A change
// of the deadline alone is also accepted on later non-terminal orders.
type EditWorkOrderCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID
	changes     workorder.Changes

	guard guard.ConstructorGuard
}

func NewEditWorkOrderCommand(actor kernel.Actor, workOrderID kernel.UUID, changes workorder.Changes) (EditWorkOrderCommand, error) {
	var errList []error
	errList = append(errList, actor.Validate(), workOrderID.Validate())
	if changes.IsEmpty() {
		errList = append(errList, errs.NewValueIsRequiredError("changes"))
	}
	if err := errors.Join(errList...); err != nil {
		return EditWorkOrderCommand{}, err
	}

	return EditWorkOrderCommand{
		actor:       actor,
		workOrderID: workOrderID,
		changes:     changes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c EditWorkOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditWorkOrderCommandIsNotConstructed)
}

func (c EditWorkOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c EditWorkOrderCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c EditWorkOrderCommand) Changes() workorder.Changes {
	return c.changes
}
