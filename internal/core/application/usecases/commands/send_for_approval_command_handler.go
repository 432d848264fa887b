package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// SendForApprovalCommandHandler moves a DRAFT order to PENDING_APPROVAL and
// notifies the assigned worker.
type SendForApprovalCommandHandler struct {
	runner transitionRunner
}

func NewSendForApprovalCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) SendForApprovalCommandHandler {
	return SendForApprovalCommandHandler{
		runner: newTransitionRunner(uowFactory, clock, logger.With("component", "send_for_approval_handler")),
	}
}

func (h SendForApprovalCommandHandler) Handle(ctx context.Context, command SendForApprovalCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.runner.run(ctx, command.Actor(), command.WorkOrderID(), "send for approval",
		func(_ context.Context, _ WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error {
			return order.SendForApproval(command.Actor(), now)
		},
	)
}
