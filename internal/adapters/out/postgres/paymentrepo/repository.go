package paymentrepo

import (
	"context"
	"errors"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPaymentRepository) Add(ctx context.Context, record *payment.PaymentRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dto)
	if result.Error != nil {
		return result.Error
	}
	// Another transaction created the record first.
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("payment record", 0)
	}

	r.tracker.TrackAggregate(record.WorkOrderID(), record)
	return nil
}

func (r *GormPaymentRepository) Update(ctx context.Context, record *payment.PaymentRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&PaymentRecordDTO{}).
		Where("work_order_id = ?", dto.WorkOrderID).
		Select("status", "payment_date", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("payment record", record.WorkOrderID().String())
	}

	r.tracker.TrackAggregate(record.WorkOrderID(), record)
	return nil
}

func (r *GormPaymentRepository) Get(ctx context.Context, workOrderID kernel.UUID) (*payment.PaymentRecord, error) {
	if err := workOrderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentRecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "work_order_id = ?", workOrderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment record", workOrderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
