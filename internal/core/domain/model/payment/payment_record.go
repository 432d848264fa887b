package payment

import (
	"errors"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
)

var ErrPaymentRecordIsNotConstructed = errors.New("PaymentRecord must be created via NewPaymentRecord constructor")

// PaymentRecord tracks whether the final value of one completed work order was paid.
type PaymentRecord struct {
	workOrderID kernel.UUID
	status      Status
	paymentDate *time.Time
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewPaymentRecord opens a pending record for a completed order.
func NewPaymentRecord(order *workorder.WorkOrder, now time.Time) (*PaymentRecord, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateEligible(order); err != nil {
		return nil, err
	}

	return &PaymentRecord{
		workOrderID:   order.ID(),
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// ValidateEligible refuses payment operations on orders that are not completed.
func ValidateEligible(order *workorder.WorkOrder) error {
	if !order.State().IsCompleted() {
		return errs.NewPaymentIsNotEligibleError(order.ID().String(), order.State().String())
	}
	return nil
}

// RestorePaymentRecord rebuilds a record from storage.
func RestorePaymentRecord(
	workOrderID kernel.UUID,
	status Status,
	paymentDate *time.Time,
	createdAt, updatedAt time.Time,
) (*PaymentRecord, error) {
	if err := errors.Join(workOrderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if (status == Paid) != (paymentDate != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"payment date", errors.New("a payment date is present exactly when the record is paid"),
		)
	}

	return &PaymentRecord{
		workOrderID:   workOrderID,
		status:        status,
		paymentDate:   paymentDate,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the record was built through a constructor.
func (p *PaymentRecord) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentRecordIsNotConstructed
	}
	return nil
}

// WorkOrderID identifies the record; there is at most one per order.
func (p *PaymentRecord) WorkOrderID() kernel.UUID {
	return p.workOrderID
}

// Status is Pending or Paid.
func (p *PaymentRecord) Status() Status {
	return p.status
}

// IsPaid reports whether Status is Paid.
func (p *PaymentRecord) IsPaid() bool {
	return p.status == Paid
}

// PaymentDate is nil unless the record is paid.
func (p *PaymentRecord) PaymentDate() *time.Time {
	return p.paymentDate
}

func (p *PaymentRecord) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt is the time of the last status change.
func (p *PaymentRecord) UpdatedAt() time.Time {
	return p.updatedAt
}

// MarkPaid is idempotent. It reports whether the record changed; a record that
// is already paid keeps its first payment date.
func (p *PaymentRecord) MarkPaid(now time.Time) bool {
	if p.status == Paid {
		return false
	}
	p.status = Paid
	p.paymentDate = &now
	p.updatedAt = now
	return true
}

// SetStatus moves the record to status. Reverting to pending clears the payment date.
func (p *PaymentRecord) SetStatus(status Status, now time.Time) (bool, error) {
	if err := status.Validate(); err != nil {
		return false, err
	}
	if status == Paid {
		return p.MarkPaid(now), nil
	}
	if p.status == Pending {
		return false, nil
	}
	p.status = Pending
	p.paymentDate = nil
	p.updatedAt = now
	return true, nil
}
