package queries

import (
	"database/sql"
	"encoding/json"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// WorkOrderView is the read model of a work order with its worker name and
// payment status.
type WorkOrderView struct {
	ID                    kernel.UUID
	BatchID               kernel.UUID
	CreatedBy             kernel.UUID
	WorkerID              kernel.UUID
	WorkerName            string
	Title                 string
	Description           string
	Requirements          []string
	Value                 kernel.Money
	Deadline              time.Time
	State                 workorder.State
	CompletionRequestedAt *time.Time
	CompletedAt           *time.Time
	Settlement            *SettlementView
	// PaymentStatus is empty for orders that are not completed. Completed
	// orders without a payment record are pending.
	PaymentStatus payment.Status
	PaymentDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int
}

type SettlementView struct {
	DaysLate          int
	PenaltyPercentage int
	PenaltyAmount     kernel.Money
	FinalValue        kernel.Money
}

const workOrderViewSelect = `
	SELECT
		o.id,
		o.batch_id,
		o.created_by,
		o.worker_id,
		w.name,
		o.title,
		o.description,
		o.requirements,
		o.value,
		o.deadline,
		o.state,
		o.completion_requested_at,
		o.completed_at,
		o.days_late,
		o.penalty_percentage,
		o.penalty_amount,
		o.final_value,
		p.status,
		p.payment_date,
		o.created_at,
		o.updated_at,
		o.version
	FROM work_orders o
	LEFT JOIN workers w ON w.id = o.worker_id
	LEFT JOIN payment_records p ON p.work_order_id = o.id`

func scanWorkOrderView(rows *sql.Rows) (WorkOrderView, error) {
	var (
		id, batchID, createdBy, workerID uuid.UUID
		workerName, paymentStatus        sql.NullString
		requirements                     datatypes.JSON
		value                            decimal.Decimal
		state                            string
		completionRequestedAt            sql.NullTime
		completedAt, paymentDate         sql.NullTime
		daysLate, penaltyPercentage      sql.NullInt64
		penaltyAmount, finalValue        decimal.NullDecimal
		view                             WorkOrderView
	)

	err := rows.Scan(
		&id,
		&batchID,
		&createdBy,
		&workerID,
		&workerName,
		&view.Title,
		&view.Description,
		&requirements,
		&value,
		&view.Deadline,
		&state,
		&completionRequestedAt,
		&completedAt,
		&daysLate,
		&penaltyPercentage,
		&penaltyAmount,
		&finalValue,
		&paymentStatus,
		&paymentDate,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Version,
	)
	if err != nil {
		return WorkOrderView{}, err
	}

	for _, pair := range []struct {
		dst *kernel.UUID
		src uuid.UUID
	}{{&view.ID, id}, {&view.BatchID, batchID}, {&view.CreatedBy, createdBy}, {&view.WorkerID, workerID}} {
		if *pair.dst, err = kernel.UUIDFromBytes(pair.src[:]); err != nil {
			return WorkOrderView{}, err
		}
	}

	if view.Value, err = kernel.NewMoney(value); err != nil {
		return WorkOrderView{}, err
	}
	if view.State, err = workorder.ParseState(state); err != nil {
		return WorkOrderView{}, err
	}
	if len(requirements) > 0 {
		if err = json.Unmarshal(requirements, &view.Requirements); err != nil {
			return WorkOrderView{}, err
		}
	}
	if view.Requirements == nil {
		view.Requirements = []string{}
	}

	view.WorkerName = workerName.String
	view.Deadline = view.Deadline.UTC()
	view.CreatedAt = view.CreatedAt.UTC()
	view.UpdatedAt = view.UpdatedAt.UTC()
	view.CompletionRequestedAt = nullTime(completionRequestedAt)
	view.CompletedAt = nullTime(completedAt)

	if finalValue.Valid {
		settlement := SettlementView{
			DaysLate:          int(daysLate.Int64),
			PenaltyPercentage: int(penaltyPercentage.Int64),
			PenaltyAmount:     kernel.ZeroMoney(),
		}
		if penaltyAmount.Valid {
			if settlement.PenaltyAmount, err = kernel.NewMoney(penaltyAmount.Decimal); err != nil {
				return WorkOrderView{}, err
			}
		}
		if settlement.FinalValue, err = kernel.NewMoney(finalValue.Decimal); err != nil {
			return WorkOrderView{}, err
		}
		view.Settlement = &settlement
	}

	if view.State.IsCompleted() {
		view.PaymentStatus = payment.Pending
		if paymentStatus.Valid {
			if view.PaymentStatus, err = payment.ParseStatus(paymentStatus.String); err != nil {
				return WorkOrderView{}, err
			}
		}
		view.PaymentDate = nullTime(paymentDate)
	}

	return view, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}
