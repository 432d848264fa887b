package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"workorders/internal/core/domain/model/worker"
	"workorders/internal/core/ports"
	"workorders/internal/pkg/errs"
)

// RegisterWorkerCommandHandler stores a new worker. Admin only.
type RegisterWorkerCommandHandler struct {
	uowFactory WorkerUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

func NewRegisterWorkerCommandHandler(
	uowFactory WorkerUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) RegisterWorkerCommandHandler {
	return RegisterWorkerCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "register_worker_handler"),
	}
}

func (h RegisterWorkerCommandHandler) Handle(ctx context.Context, command RegisterWorkerCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if !command.Actor().IsAdmin() {
		h.logger.WarnContext(ctx, "unauthorized worker registration", "actor", command.Actor().String())
		return errs.NewActorIsUnauthorizedError(command.Actor().ID().String(), "register worker", "admin only")
	}

	w, err := worker.NewWorker(command.WorkerID(), command.Name(), h.clock.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.WorkerRepository()
	if _, err = repo.Get(ctx, w.ID()); err == nil {
		return errs.NewValueIsInvalidErrorWithCause("worker id", fmt.Errorf("worker %s is already registered", w.ID()))
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = repo.Add(ctx, w); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
