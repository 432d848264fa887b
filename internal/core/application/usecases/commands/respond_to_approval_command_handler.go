package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
)

// RespondToApprovalCommandHandler records the worker's accept or reject and
// notifies the issuing admin.
type RespondToApprovalCommandHandler struct {
	runner transitionRunner
}

func NewRespondToApprovalCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) RespondToApprovalCommandHandler {
	return RespondToApprovalCommandHandler{
		runner: newTransitionRunner(uowFactory, clock, logger.With("component", "respond_to_approval_handler")),
	}
}

func (h RespondToApprovalCommandHandler) Handle(ctx context.Context, command RespondToApprovalCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	action := "reject"
	if command.Accept() {
		action = "accept"
	}

	return h.runner.run(ctx, command.Actor(), command.WorkOrderID(), action,
		func(_ context.Context, _ WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error {
			return order.RespondToApproval(command.Actor(), command.Accept(), now)
		},
	)
}
