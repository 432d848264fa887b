package commands

import (
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrExtendDeadlineCommandIsNotConstructed = errors.New(
	"ExtendDeadlineCommand must be created via NewExtendDeadlineCommand constructor",
)

// ExtendDeadlineCommand moves the deadline of a non-terminal order strictly later.
type ExtendDeadlineCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	workOrderID kernel.UUID
	deadline    time.Time

	guard guard.ConstructorGuard
}

func NewExtendDeadlineCommand(actor kernel.Actor, workOrderID kernel.UUID, deadline time.Time) (ExtendDeadlineCommand, error) {
	var errList []error
	errList = append(errList, actor.Validate(), workOrderID.Validate())
	if deadline.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("deadline"))
	}
	if err := errors.Join(errList...); err != nil {
		return ExtendDeadlineCommand{}, err
	}

	return ExtendDeadlineCommand{
		actor:       actor,
		workOrderID: workOrderID,
		deadline:    deadline,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ExtendDeadlineCommand) Validate() error {
	return c.guard.Validate(ErrExtendDeadlineCommandIsNotConstructed)
}

func (c ExtendDeadlineCommand) Actor() kernel.Actor {
	return c.actor
}

func (c ExtendDeadlineCommand) WorkOrderID() kernel.UUID {
	return c.workOrderID
}

func (c ExtendDeadlineCommand) Deadline() time.Time {
	return c.deadline
}
