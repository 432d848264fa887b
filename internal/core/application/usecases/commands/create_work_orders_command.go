package commands

import (
	"errors"
	"fmt"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrCreateWorkOrdersCommandIsNotConstructed = errors.New(
	"CreateWorkOrdersCommand must be created via NewCreateWorkOrdersCommand constructor",
)

// Assignment pairs one worker with the value of the order issued to them.
type Assignment struct {
	WorkerID kernel.UUID
	Value    kernel.Money
}

// CreateWorkOrdersCommand issues one DRAFT order per assignment. All orders
// share the brief and a batch ID; the command generates every ID up front so
// the caller knows them before the handler runs.
//
// Example:
//
//	cmd, err := NewCreateWorkOrdersCommand(admin, brief, []Assignment{
//	    {WorkerID: alice, Value: v100k},
//	    {WorkerID: bob, Value: v200k},
//	})
//	if err != nil {
//	    return err
//	}
//	if err = handler.Handle(ctx, cmd); err != nil {
//	    return err // nothing was created
//	}
//	fmt.Println(cmd.BatchID(), cmd.WorkOrderIDs())
type CreateWorkOrdersCommand struct { //nolint:recvcheck //using for validation
	actor        kernel.Actor
	batchID      kernel.UUID
	brief        workorder.Brief
	assignments  []Assignment
	workOrderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

func NewCreateWorkOrdersCommand(
	actor kernel.Actor,
	brief workorder.Brief,
	assignments []Assignment,
) (CreateWorkOrdersCommand, error) {
	c := CreateWorkOrdersCommand{
		batchID: kernel.NewUUID(),
		brief:   brief,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		c.setAssignments(assignments),
	); err != nil {
		return CreateWorkOrdersCommand{}, err
	}
	c.actor = actor

	return c, nil
}

func (c CreateWorkOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateWorkOrdersCommandIsNotConstructed)
}

func (c CreateWorkOrdersCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateWorkOrdersCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c CreateWorkOrdersCommand) Brief() workorder.Brief {
	return c.brief
}

func (c CreateWorkOrdersCommand) Assignments() []Assignment {
	return append([]Assignment(nil), c.assignments...)
}

// WorkOrderIDs are aligned with Assignments.
func (c CreateWorkOrdersCommand) WorkOrderIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.workOrderIDs...)
}

func (c *CreateWorkOrdersCommand) setAssignments(assignments []Assignment) error {
	if len(assignments) == 0 {
		return errs.NewValueIsRequiredError("assignments")
	}

	var errList []error
	seen := make(map[kernel.UUID]int, len(assignments))
	for i, a := range assignments {
		if err := a.WorkerID.Validate(); err != nil {
			errList = append(errList, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("assignments[%d].worker", i), err))
			continue
		}
		if first, ok := seen[a.WorkerID]; ok {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("assignments[%d].worker", i),
				fmt.Errorf("worker %s is already assigned at index %d", a.WorkerID, first),
			))
			continue
		}
		seen[a.WorkerID] = i
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.assignments = append([]Assignment(nil), assignments...)
	c.workOrderIDs = make([]kernel.UUID, len(assignments))
	for i := range assignments {
		c.workOrderIDs[i] = kernel.NewUUID()
	}
	return nil
}
