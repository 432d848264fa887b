// Package workorderrepo persists the WorkOrder aggregate with GORM. The
// settlement columns are null until the order is completed; version carries the
// optimistic concurrency counter.
package workorderrepo

import (
	"encoding/json"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// WorkOrderDTO is the row of the work_orders table.
type WorkOrderDTO struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey"`
	BatchID               uuid.UUID           `gorm:"type:uuid;index;not null"`
	CreatedBy             uuid.UUID           `gorm:"type:uuid;index;not null"`
	WorkerID              uuid.UUID           `gorm:"type:uuid;index;not null"`
	Title                 string              `gorm:"size:255;not null"`
	Description           string              `gorm:"type:text"`
	Requirements          datatypes.JSON      `gorm:"not null"`
	Value                 decimal.Decimal     `gorm:"type:numeric(20,2);not null"`
	Deadline              time.Time           `gorm:"not null"`
	State                 string              `gorm:"size:32;index;not null"`
	CompletionRequestedAt *time.Time          `gorm:""`
	CompletedAt           *time.Time          `gorm:"index"`
	DaysLate              *int                `gorm:""`
	PenaltyPercentage     *int                `gorm:""`
	PenaltyAmount         decimal.NullDecimal `gorm:"type:numeric(20,2)"`
	FinalValue            decimal.NullDecimal `gorm:"type:numeric(20,2)"`
	CreatedAt             time.Time           `gorm:"autoCreateTime:false;not null"`
	UpdatedAt             time.Time           `gorm:"autoUpdateTime:false;not null"`
	Version               int                 `gorm:"not null"`
}

func (WorkOrderDTO) TableName() string {
	return "work_orders"
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func fromDomain(o *workorder.WorkOrder) (WorkOrderDTO, error) {
	requirements, err := json.Marshal(o.Requirements())
	if err != nil {
		return WorkOrderDTO{}, err
	}

	dto := WorkOrderDTO{
		ID:                    o.ID().Bytes(),
		BatchID:               o.BatchID().Bytes(),
		CreatedBy:             o.CreatedBy().Bytes(),
		WorkerID:              o.WorkerID().Bytes(),
		Title:                 o.Title(),
		Description:           o.Description(),
		Requirements:          datatypes.JSON(requirements),
		Value:                 o.Value().Amount(),
		Deadline:              o.Deadline().UTC(),
		State:                 o.State().String(),
		CompletionRequestedAt: utcPtr(o.CompletionRequestedAt()),
		CompletedAt:           utcPtr(o.CompletedAt()),
		CreatedAt:             o.CreatedAt().UTC(),
		UpdatedAt:             o.UpdatedAt().UTC(),
		Version:               o.Version(),
	}

	if s := o.Settlement(); s != nil {
		daysLate, percentage := s.DaysLate(), s.PenaltyPercentage()
		dto.DaysLate = &daysLate
		dto.PenaltyPercentage = &percentage
		dto.PenaltyAmount = decimal.NewNullDecimal(s.PenaltyAmount().Amount())
		dto.FinalValue = decimal.NewNullDecimal(s.FinalValue().Amount())
	}

	return dto, nil
}

func uuidOf(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toDomain(dto WorkOrderDTO) (*workorder.WorkOrder, error) {
	id, err := uuidOf(dto.ID)
	if err != nil {
		return nil, err
	}
	batchID, err := uuidOf(dto.BatchID)
	if err != nil {
		return nil, err
	}
	createdBy, err := uuidOf(dto.CreatedBy)
	if err != nil {
		return nil, err
	}
	workerID, err := uuidOf(dto.WorkerID)
	if err != nil {
		return nil, err
	}
	value, err := kernel.NewMoney(dto.Value)
	if err != nil {
		return nil, err
	}
	state, err := workorder.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	var requirements []string
	if len(dto.Requirements) > 0 {
		if err = json.Unmarshal(dto.Requirements, &requirements); err != nil {
			return nil, err
		}
	}

	var settlement *workorder.Settlement
	if dto.FinalValue.Valid {
		s, sErr := restoreSettlement(value, dto)
		if sErr != nil {
			return nil, sErr
		}
		settlement = &s
	}

	return workorder.RestoreWorkOrder(workorder.Snapshot{
		ID:                    id,
		BatchID:               batchID,
		CreatedBy:             createdBy,
		WorkerID:              workerID,
		Title:                 dto.Title,
		Description:           dto.Description,
		Value:                 value,
		Deadline:              dto.Deadline.UTC(),
		Requirements:          requirements,
		State:                 state,
		CompletionRequestedAt: utcPtr(dto.CompletionRequestedAt),
		CompletedAt:           utcPtr(dto.CompletedAt),
		Settlement:            settlement,
		CreatedAt:             dto.CreatedAt.UTC(),
		UpdatedAt:             dto.UpdatedAt.UTC(),
		Version:               dto.Version,
	})
}

func restoreSettlement(value kernel.Money, dto WorkOrderDTO) (workorder.Settlement, error) {
	penalty := decimal.Zero
	if dto.PenaltyAmount.Valid {
		penalty = dto.PenaltyAmount.Decimal
	}
	penaltyAmount, err := kernel.NewMoney(penalty)
	if err != nil {
		return workorder.Settlement{}, err
	}
	finalValue, err := kernel.NewMoney(dto.FinalValue.Decimal)
	if err != nil {
		return workorder.Settlement{}, err
	}

	var daysLate, percentage int
	if dto.DaysLate != nil {
		daysLate = *dto.DaysLate
	}
	if dto.PenaltyPercentage != nil {
		percentage = *dto.PenaltyPercentage
	}

	return workorder.NewSettlement(value, daysLate, percentage, penaltyAmount, finalValue)
}
