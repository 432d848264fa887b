package queries

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/guard"
)

var ErrListWorkOrdersQueryIsNotConstructed = errors.New(
	"ListWorkOrdersQuery must be created via NewListWorkOrdersQuery constructor",
)

// WorkOrderFilter narrows a listing. Nil fields do not filter.
type WorkOrderFilter struct {
	WorkerID *kernel.UUID
	State    *workorder.State
	BatchID  *kernel.UUID
}

// ListWorkOrdersQuery lists work orders, newest first. A worker's listing is
// always restricted to their own orders whatever the filter says.
//
//nolint:recvcheck //using for validation
type ListWorkOrdersQuery struct {
	actor  kernel.Actor
	filter WorkOrderFilter

	guard guard.ConstructorGuard
}

func NewListWorkOrdersQuery(actor kernel.Actor, filter WorkOrderFilter) (ListWorkOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListWorkOrdersQuery{}, err
	}
	if filter.State != nil {
		if err := filter.State.Validate(); err != nil {
			return ListWorkOrdersQuery{}, err
		}
	}

	if actor.IsWorker() {
		own := actor.ID()
		filter.WorkerID = &own
	}

	return ListWorkOrdersQuery{
		actor:  actor,
		filter: filter,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListWorkOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkOrdersQueryIsNotConstructed)
}

func (q ListWorkOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

func (q ListWorkOrdersQuery) Filter() WorkOrderFilter {
	return q.filter
}
