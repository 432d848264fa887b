// Package worker holds the registry entry of a person work orders can be
// assigned to.
package worker

import (
	"errors"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"
)

// ErrWorkerIsNotConstructed is returned by Validate on a Worker that did not
// come from NewWorker or RestoreWorker.
var ErrWorkerIsNotConstructed = errors.New("Worker must be created via NewWorker constructor")

// Worker is referenced by work orders through its ID. Its ID is the same
// identifier the identity layer puts in the actor.
type Worker struct {
	id        kernel.UUID
	name      string
	createdAt time.Time

	isConstructed bool
}

// NewWorker registers a worker. The name is trimmed and must not be empty;
// the id must be the identifier the worker authenticates with.
func NewWorker(id kernel.UUID, name string, now time.Time) (*Worker, error) {
	return RestoreWorker(id, name, now)
}

// RestoreWorker rebuilds a stored worker, applying the same checks as NewWorker.
func RestoreWorker(id kernel.UUID, name string, createdAt time.Time) (*Worker, error) {
	name = strings.TrimSpace(name)

	var errList []error
	if err := id.Validate(); err != nil {
		errList = append(errList, err)
	}
	if name == "" {
		errList = append(errList, errs.NewValueIsRequiredError("name"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Worker{id: id, name: name, createdAt: createdAt, isConstructed: true}, nil
}

// Validate ensures the Worker was built through a constructor.
func (w *Worker) Validate() error {
	if w == nil || !w.isConstructed {
		return ErrWorkerIsNotConstructed
	}
	return nil
}

func (w *Worker) ID() kernel.UUID {
	return w.id
}

// Name is the display name shown in order views and the payroll.
func (w *Worker) Name() string {
	return w.name
}

func (w *Worker) CreatedAt() time.Time {
	return w.createdAt
}
