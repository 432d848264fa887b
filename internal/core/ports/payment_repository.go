package ports

import (
	"context"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
)

// PaymentRepository stores payment records keyed by work order ID. Records are
// never deleted.
type PaymentRepository interface {
	Add(ctx context.Context, record *payment.PaymentRecord) error
	Update(ctx context.Context, record *payment.PaymentRecord) error

	// Get retrieves the record of a work order, or errs.ErrObjectNotFound when
	// no payment status was ever set for it.
	Get(ctx context.Context, workOrderID kernel.UUID) (*payment.PaymentRecord, error)
}
