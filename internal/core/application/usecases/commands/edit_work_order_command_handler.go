package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

type EditWorkOrderCommandHandler struct {
	runner transitionRunner
}

func NewEditWorkOrderCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) EditWorkOrderCommandHandler {
	return EditWorkOrderCommandHandler{
		runner: newTransitionRunner(uowFactory, clock, logger.With("component", "edit_work_order_handler")),
	}
}

// Handle applies the changes atomically. A new assignee must be a registered
// worker; an unknown one is reported as not found.
func (h EditWorkOrderCommandHandler) Handle(ctx context.Context, command EditWorkOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	changes := command.Changes()

	return h.runner.run(ctx, command.Actor(), command.WorkOrderID(), "edit",
		func(ctx context.Context, uow WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error {
			if changes.WorkerID != nil && command.Actor().IsAdmin() && order.State() == workorder.Draft {
				if _, err := uow.WorkerRepository().Get(ctx, *changes.WorkerID); err != nil {
					return err
				}
			}
			return order.Edit(command.Actor(), changes, now)
		},
	)
}
