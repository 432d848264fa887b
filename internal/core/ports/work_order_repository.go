// Package ports defines the contracts between the work order core and its
// infrastructure: persistence, the notification outbox and message delivery.
package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
)

// WorkOrderRepository defines the persistence contract for work order aggregates.
type WorkOrderRepository interface {
	// Add persists a new work order at version 1.
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Update persists changes to an existing work order. The write only succeeds
	// if the stored version still equals the version the aggregate was loaded
	// with; otherwise errs.ErrVersionIsInvalid is returned and nothing is written.
	// On success the aggregate is synced to the new version.
	Update(ctx context.Context, aggregate *workorder.WorkOrder) error

	// Get retrieves a work order by ID, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)

	// GetForUpdate is Get plus an exclusive lock on the order held until the
	// transaction ends. Writers of data keyed by the order (the payment ledger)
	// take it so their read-modify-write cycles run one at a time.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error)
}
