package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

type RequestCompletionCommandHandler struct {
	runner transitionRunner
}

func NewRequestCompletionCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) RequestCompletionCommandHandler {
	return RequestCompletionCommandHandler{
		runner: newTransitionRunner(uowFactory, clock, logger.With("component", "request_completion_handler")),
	}
}

// Handle moves the order to COMPLETION_REQUESTED. The request time is stored
// for audit only.
func (h RequestCompletionCommandHandler) Handle(ctx context.Context, command RequestCompletionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, command.Actor(), command.WorkOrderID(), "request completion",
		func(_ context.Context, _ WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error {
			return order.RequestCompletion(command.Actor(), now)
		},
	)
}
