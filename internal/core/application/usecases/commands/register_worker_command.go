package commands

import (
	"errors"
	"strings"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
	"workorders/internal/pkg/guard"
)

var ErrRegisterWorkerCommandIsNotConstructed = errors.New(
	"RegisterWorkerCommand must be created via NewRegisterWorkerCommand constructor",
)

// RegisterWorkerCommand adds a person to the worker registry. The ID is the one
// the identity layer issues to that worker.
type RegisterWorkerCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.Actor
	workerID kernel.UUID
	name     string

	guard guard.ConstructorGuard
}

func NewRegisterWorkerCommand(actor kernel.Actor, workerID kernel.UUID, name string) (RegisterWorkerCommand, error) {
	var errList []error
	errList = append(errList, actor.Validate(), workerID.Validate())
	if strings.TrimSpace(name) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterWorkerCommand{}, err
	}

	return RegisterWorkerCommand{
		actor:    actor,
		workerID: workerID,
		name:     name,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterWorkerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterWorkerCommandIsNotConstructed)
}

func (c RegisterWorkerCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RegisterWorkerCommand) WorkerID() kernel.UUID {
	return c.workerID
}

func (c RegisterWorkerCommand) Name() string {
	return c.name
}
