package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/worker"
)

// WorkerRepository defines the persistence contract for the worker registry.
type WorkerRepository interface {
	Add(ctx context.Context, w *worker.Worker) error

	// Get retrieves a worker by ID, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error)
}
