package queries

import (
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/guard"
)

var ErrGetWorkOrderQueryIsNotConstructed = errors.New(
	"GetWorkOrderQuery must be created via NewGetWorkOrderQuery constructor",
)

// GetWorkOrderQuery reads one work order. Admins see any order, workers only
// the ones assigned to them.
//
//nolint:recvcheck //using for validation
type GetWorkOrderQuery struct {
	actor       kernel.Actor
	workOrderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetWorkOrderQuery(actor kernel.Actor, workOrderID kernel.UUID) (GetWorkOrderQuery, error) {
	if err := errors.Join(actor.Validate(), workOrderID.Validate()); err != nil {
		return GetWorkOrderQuery{}, err
	}
	return GetWorkOrderQuery{
		actor:       actor,
		workOrderID: workOrderID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetWorkOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetWorkOrderQueryIsNotConstructed)
}

func (q GetWorkOrderQuery) Actor() kernel.Actor {
	return q.actor
}

func (q GetWorkOrderQuery) WorkOrderID() kernel.UUID {
	return q.workOrderID
}
