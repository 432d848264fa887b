package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/domain/services"
	"workorders/internal/core/ports"
)

// ApproveCompletionCommandHandler settles a completed order with the penalty
// calculator and moves it to DONE_ON_TIME or DONE_LATE.
//
// Example:
//
//	handler := NewApproveCompletionCommandHandler(uowFactory, clock, logger)
//	cmd, _ := NewApproveCompletionCommand(admin, orderID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrTransitionIsInvalid) {
//	    // the worker has not requested completion, or someone else got there first
//	}
type ApproveCompletionCommandHandler struct {
	runner     transitionRunner
	calculator services.PenaltyCalculator
}

func NewApproveCompletionCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) ApproveCompletionCommandHandler {
	return ApproveCompletionCommandHandler{
		runner:     newTransitionRunner(uowFactory, clock, logger.With("component", "approve_completion_handler")),
		calculator: services.NewPenaltyCalculator(),
	}
}

func (h ApproveCompletionCommandHandler) Handle(ctx context.Context, command ApproveCompletionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, command.Actor(), command.WorkOrderID(), "approve completion",
		func(_ context.Context, _ WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error {
			settlement, err := h.calculator.Settle(order.Deadline(), now, order.Value())
			if err != nil {
				return err
			}
			return order.ApproveCompletion(command.Actor(), settlement, now)
		},
	)
}
