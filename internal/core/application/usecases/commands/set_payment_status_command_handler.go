package commands

import (
	"context"
	"errors"
	"log/slog"

	"workorders/internal/core/domain/model/payment"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"
)

// SetPaymentStatusCommandHandler keeps the payment ledger. The record of an
// order is created on its first status change, and only once the order is
// DONE_ON_TIME or DONE_LATE.
//
// Example:
//
//	cmd, _ := NewMarkPaidCommand(admin, orderID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPaymentIsNotEligible):
//	    // the order is not completed yet
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // no such order
//	}
type SetPaymentStatusCommandHandler struct {
	uowFactory PaymentUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewSetPaymentStatusCommandHandler(
	uowFactory PaymentUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) SetPaymentStatusCommandHandler {
	return SetPaymentStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "payment_ledger"),
	}
}

func (h SetPaymentStatusCommandHandler) Handle(ctx context.Context, command SetPaymentStatusCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if !command.Actor().IsAdmin() {
		h.logger.WarnContext(ctx, "unauthorized payment action",
			"work_order_id", command.WorkOrderID().String(), "actor", command.Actor().String())
		return errs.NewActorIsUnauthorizedError(command.Actor().ID().String(), "set payment status", "admin only")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// The order lock makes concurrent ledger writes for one order run in turn,
	// so the first payment date wins and the record is created once.
	order, err := uow.WorkOrderRepository().GetForUpdate(ctx, command.WorkOrderID())
	if err != nil {
		return err
	}
	if err = payment.ValidateEligible(order); err != nil {
		return err
	}

	now := h.clock.Now()
	repo := uow.PaymentRepository()

	record, err := repo.Get(ctx, order.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if record, err = payment.NewPaymentRecord(order, now); err != nil {
			return err
		}
		if _, err = record.SetStatus(command.Status(), now); err != nil {
			return err
		}
		if err = repo.Add(ctx, record); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		changed, setErr := record.SetStatus(command.Status(), now)
		if setErr != nil {
			return setErr
		}
		if !changed {
			return nil
		}
		if err = repo.Update(ctx, record); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "payment status set",
		"work_order_id", order.ID().String(),
		"status", record.Status().String(),
		"final_value", order.FinalValue().String(),
	)
	return nil
}
