// Package paymentrepo persists payment records, one per completed work order.
package paymentrepo

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

type PaymentRecordDTO struct {
	WorkOrderID uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status      string     `gorm:"size:16;index;not null"`
	PaymentDate *time.Time `gorm:""`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false;not null"`
}

func (PaymentRecordDTO) TableName() string {
	return "payment_records"
}

func fromDomain(p *payment.PaymentRecord) PaymentRecordDTO {
	dto := PaymentRecordDTO{
		WorkOrderID: p.WorkOrderID().Bytes(),
		Status:      p.Status().String(),
		CreatedAt:   p.CreatedAt().UTC(),
		UpdatedAt:   p.UpdatedAt().UTC(),
	}
	if d := p.PaymentDate(); d != nil {
		u := d.UTC()
		dto.PaymentDate = &u
	}
	return dto
}

func toDomain(dto PaymentRecordDTO) (*payment.PaymentRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	var date *time.Time
	if dto.PaymentDate != nil {
		u := dto.PaymentDate.UTC()
		date = &u
	}
	return payment.RestorePaymentRecord(id, status, date, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}
