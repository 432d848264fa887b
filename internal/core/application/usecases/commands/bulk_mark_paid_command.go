package commands

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrBulkMarkPaidCommandIsNotConstructed = errors.New(
	"BulkMarkPaidCommand must be created via NewBulkMarkPaidCommand constructor",
)

// BulkMarkPaidCommand marks many completed orders paid. Repeated IDs are
// collapsed, keeping the first position.
type BulkMarkPaidCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	workOrderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewBulkMarkPaidCommand(actor kernel.Actor, workOrderIDs []kernel.UUID) (BulkMarkPaidCommand, error) {
	if err := actor.Validate(); err != nil {
		return BulkMarkPaidCommand{}, err
	}
	if len(workOrderIDs) == 0 {
		return BulkMarkPaidCommand{}, errs.NewValueIsRequiredError("work order ids")
	}

	seen := make(map[kernel.UUID]struct{}, len(workOrderIDs))
	ids := make([]kernel.UUID, 0, len(workOrderIDs))
	for _, id := range workOrderIDs {
		if err := id.Validate(); err != nil {
			return BulkMarkPaidCommand{}, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	return BulkMarkPaidCommand{
		actor:        actor,
		workOrderIDs: ids,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c BulkMarkPaidCommand) Validate() error {
	return c.guard.Validate(ErrBulkMarkPaidCommandIsNotConstructed)
}

func (c BulkMarkPaidCommand) Actor() kernel.Actor {
	return c.actor
}

func (c BulkMarkPaidCommand) WorkOrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.workOrderIDs...)
}
