// Package commands contains business operations that modify system state.
// Every command is built through its constructor, carries the acting kernel.Actor
// explicitly and is executed by a handler inside one unit of work.
package commands

import (
	"context"

	"workorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	PaymentRepoFactory interface {
		PaymentRepository() ports.PaymentRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// WorkerUoW manages transactions for the worker registry.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
	}

	WorkerUoWFactory interface {
		Create() WorkerUoW
	}

	// WorkOrderUoW manages transactions that change work orders. Transitions
	// write their notification to the outbox in the same transaction; creation
	// and reassignment check the worker registry.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   order, err := uow.WorkOrderRepository().Get(ctx, id)
	//   // ... mutate order
	//   err = uow.WorkOrderRepository().Update(ctx, order)
	//   err = uow.NotificationRepository().Add(ctx, n)
	//
	//   err = uow.Commit(ctx)
	WorkOrderUoW interface {
		TxManager
		WorkOrderRepoFactory
		WorkerRepoFactory
		NotificationRepoFactory
	}

	WorkOrderUoWFactory interface {
		Create() WorkOrderUoW
	}

	// PaymentUoW manages transactions of the payment ledger.
	PaymentUoW interface {
		TxManager
		WorkOrderRepoFactory
		PaymentRepoFactory
	}

	PaymentUoWFactory interface {
		Create() PaymentUoW
	}

	// NotificationUoW manages transactions of the outbox relay. It never
	// touches work orders.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
