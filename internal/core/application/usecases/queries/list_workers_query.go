package queries

import (
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrListWorkersQueryIsNotConstructed = errors.New(
	"ListWorkersQuery must be created via NewListWorkersQuery constructor",
)

// ListWorkersQuery lists the worker registry by name.
type ListWorkersQuery struct {
	guard guard.ConstructorGuard
}

func NewListWorkersQuery() ListWorkersQuery {
	return ListWorkersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListWorkersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkersQueryIsNotConstructed)
}

type WorkerView struct {
	ID        kernel.UUID
	Name      string
	CreatedAt time.Time
}
