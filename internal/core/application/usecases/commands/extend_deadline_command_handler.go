package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// ExtendDeadlineCommandHandler changes no state, so it emits no notification.
type ExtendDeadlineCommandHandler struct {
	runner transitionRunner
}

func NewExtendDeadlineCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) ExtendDeadlineCommandHandler {
	return ExtendDeadlineCommandHandler{
		runner: newTransitionRunner(uowFactory, clock, logger.With("component", "extend_deadline_handler")),
	}
}

func (h ExtendDeadlineCommandHandler) Handle(ctx context.Context, command ExtendDeadlineCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, command.Actor(), command.WorkOrderID(), "extend deadline",
		func(_ context.Context, _ WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error {
			return order.ExtendDeadline(command.Actor(), command.Deadline(), now)
		},
	)
}
