package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"
)

// CreateWorkOrdersCommandHandler fans a create request out into independent
// DRAFT orders. It is all-or-nothing: every assignment is validated before
// anything is written, and the orders are stored in one transaction.
type CreateWorkOrdersCommandHandler struct {
	uowFactory WorkOrderUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCreateWorkOrdersCommandHandler(
	uowFactory WorkOrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) CreateWorkOrdersCommandHandler {
	return CreateWorkOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "create_work_orders_handler"),
	}
}

func (h CreateWorkOrdersCommandHandler) Handle(ctx context.Context, command CreateWorkOrdersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	actor := command.Actor()
	if !actor.IsAdmin() {
		err := errs.NewActorIsUnauthorizedError(actor.ID().String(), "issue work orders", "admin only")
		h.logger.WarnContext(ctx, "unauthorized work order action", "action", "create", "actor", actor.String())
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	workerRepo := uow.WorkerRepository()
	orderRepo := uow.WorkOrderRepository()
	now := h.clock.Now()
	ids := command.WorkOrderIDs()

	orders := make([]*workorder.WorkOrder, 0, len(ids))
	var errList []error
	for i, a := range command.Assignments() {
		if _, err := workerRepo.Get(ctx, a.WorkerID); err != nil {
			if !errors.Is(err, errs.ErrObjectNotFound) {
				return err
			}
			errList = append(errList, fmt.Errorf("assignments[%d]: %w", i, err))
			continue
		}

		order, err := workorder.NewWorkOrder(ids[i], command.BatchID(), actor, a.WorkerID, command.Brief(), a.Value, now)
		if err != nil {
			errList = append(errList, fmt.Errorf("assignments[%d]: %w", i, err))
			continue
		}
		orders = append(orders, order)
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	for _, order := range orders {
		if err := orderRepo.Add(ctx, order); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "work orders created",
		"batch_id", command.BatchID().String(),
		"count", len(orders),
		"actor", actor.String(),
	)
	return nil
}
