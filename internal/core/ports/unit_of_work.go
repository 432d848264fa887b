package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one database transaction together with every repository
// bound to it. Commit and Rollback fail when no transaction is open.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	WorkOrderRepository() WorkOrderRepository
	WorkerRepository() WorkerRepository
	PaymentRepository() PaymentRepository
	NotificationRepository() NotificationRepository
}
