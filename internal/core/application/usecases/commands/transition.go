package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"
)

// readAttempts is how many fresh units of work a failed order read gets.
// Writes are never retried.
const readAttempts = 2

// mutation changes a loaded order. It may consult the unit of work, for
// example to check the worker registry.
type mutation func(ctx context.Context, uow WorkOrderUoW, order *workorder.WorkOrder, now time.Time) error

// transitionRunner is shared by the handlers that change one existing work
// order: it loads the order, applies the change, saves it under the optimistic
// version check and writes the notification for a state change, all in one
// transaction.
type transitionRunner struct {
	uowFactory WorkOrderUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func newTransitionRunner(uowFactory WorkOrderUoWFactory, clock ports.Clock, logger *slog.Logger) transitionRunner {
	return transitionRunner{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger,
	}
}

func (r transitionRunner) run(
	ctx context.Context,
	actor kernel.Actor,
	id kernel.UUID,
	action string,
	mutate mutation,
) error {
	uow, order, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := r.clock.Now()
	from := order.State()

	if err = mutate(ctx, uow, order, now); err != nil {
		r.logRefusal(ctx, actor, id, action, err)
		return err
	}

	if err = uow.WorkOrderRepository().Update(ctx, order); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			err = errs.NewTransitionIsInvalidErrorWithCause(from.String(), order.State().String(), err)
			r.logRefusal(ctx, actor, id, action, err)
		}
		return err
	}

	if order.State() != from {
		n, nErr := notification.NewNotification(kernel.NewUUID(), order, actor, now)
		if nErr != nil {
			return nErr
		}
		if err = uow.NotificationRepository().Add(ctx, n); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "work order updated",
		"work_order_id", id.String(),
		"action", action,
		"actor", actor.String(),
		"from", from.String(),
		"to", order.State().String(),
	)
	return nil
}

// load opens a unit of work and reads the order. A failed read other than
// not-found is retried once in a fresh unit of work.
func (r transitionRunner) load(ctx context.Context, id kernel.UUID) (WorkOrderUoW, *workorder.WorkOrder, error) {
	var lastErr error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		uow := r.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return nil, nil, err
		}

		order, err := uow.WorkOrderRepository().Get(ctx, id)
		if err == nil {
			return uow, order, nil
		}

		_ = uow.Rollback(ctx)
		if errors.Is(err, errs.ErrObjectNotFound) || ctx.Err() != nil {
			return nil, nil, err
		}

		lastErr = err
		r.logger.WarnContext(ctx, "work order read failed",
			"work_order_id", id.String(),
			"attempt", attempt,
			"error", err,
		)
	}
	return nil, nil, lastErr
}

// logRefusal keeps authorization failures apart from lifecycle conflicts.
func (r transitionRunner) logRefusal(ctx context.Context, actor kernel.Actor, id kernel.UUID, action string, err error) {
	switch {
	case errors.Is(err, errs.ErrActorIsUnauthorized):
		r.logger.WarnContext(ctx, "unauthorized work order action",
			"work_order_id", id.String(), "action", action, "actor", actor.String(), "error", err)
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		r.logger.InfoContext(ctx, "invalid work order transition",
			"work_order_id", id.String(), "action", action, "actor", actor.String(), "error", err)
	}
}
