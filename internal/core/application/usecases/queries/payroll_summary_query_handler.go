package queries

import (
	"context"
	"database/sql"
	"log/slog"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PayrollSummaryQueryHandler aggregates settled orders per worker. Outstanding
// is the final total minus what the payment ledger marks paid.
type PayrollSummaryQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewPayrollSummaryQueryHandler(db *gorm.DB, logger *slog.Logger) PayrollSummaryQueryHandler {
	return PayrollSummaryQueryHandler{db: db, logger: logger}
}

func (h PayrollSummaryQueryHandler) Handle(ctx context.Context, query PayrollSummaryQuery) (PayrollSummary, error) {
	if err := query.Validate(); err != nil {
		return PayrollSummary{}, err
	}

	lines, err := readWithRetry(ctx, h.logger, "payroll summary", func() ([]PayrollLine, error) {
		return h.read(ctx, query)
	})
	if err != nil {
		return PayrollSummary{}, err
	}

	totals := PayrollLine{
		TotalOriginal:    kernel.ZeroMoney(),
		TotalPenalty:     kernel.ZeroMoney(),
		TotalFinal:       kernel.ZeroMoney(),
		TotalPaid:        kernel.ZeroMoney(),
		TotalOutstanding: kernel.ZeroMoney(),
	}
	for _, line := range lines {
		totals.Orders += line.Orders
		totals.OnTime += line.OnTime
		totals.Late += line.Late
		totals.TotalOriginal = totals.TotalOriginal.Add(line.TotalOriginal)
		totals.TotalPenalty = totals.TotalPenalty.Add(line.TotalPenalty)
		totals.TotalFinal = totals.TotalFinal.Add(line.TotalFinal)
		totals.TotalPaid = totals.TotalPaid.Add(line.TotalPaid)
		totals.TotalOutstanding = totals.TotalOutstanding.Add(line.TotalOutstanding)
	}

	return PayrollSummary{
		From:   query.From(),
		To:     query.To(),
		Lines:  lines,
		Totals: totals,
	}, nil
}

func (h PayrollSummaryQueryHandler) read(ctx context.Context, query PayrollSummaryQuery) ([]PayrollLine, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.worker_id,
			MAX(w.name),
			COUNT(*),
			SUM(CASE WHEN o.state = @on_time THEN 1 ELSE 0 END),
			SUM(CASE WHEN o.state = @late THEN 1 ELSE 0 END),
			SUM(o.value),
			SUM(COALESCE(o.penalty_amount, 0)),
			SUM(o.final_value),
			SUM(CASE WHEN p.status = @paid THEN o.final_value ELSE 0 END)
		FROM work_orders o
		LEFT JOIN workers w ON w.id = o.worker_id
		LEFT JOIN payment_records p ON p.work_order_id = o.id
		WHERE o.state IN (@on_time, @late)
			AND o.completed_at >= @from
			AND o.completed_at < @to
		GROUP BY o.worker_id
		ORDER BY MAX(w.name), o.worker_id
	`,
		sql.Named("on_time", workorder.DoneOnTime.String()),
		sql.Named("late", workorder.DoneLate.String()),
		sql.Named("paid", payment.Paid.String()),
		sql.Named("from", query.From()),
		sql.Named("to", query.To()),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]PayrollLine, 0)
	for rows.Next() {
		var (
			workerID                       uuid.UUID
			workerName                     sql.NullString
			original, penalty, final, paid decimal.NullDecimal
			line                           PayrollLine
		)
		err = rows.Scan(
			&workerID,
			&workerName,
			&line.Orders,
			&line.OnTime,
			&line.Late,
			&original,
			&penalty,
			&final,
			&paid,
		)
		if err != nil {
			return nil, err
		}

		if line.WorkerID, err = kernel.UUIDFromBytes(workerID[:]); err != nil {
			return nil, err
		}
		line.WorkerName = workerName.String

		amounts := []struct {
			dst *kernel.Money
			src decimal.NullDecimal
		}{
			{&line.TotalOriginal, original},
			{&line.TotalPenalty, penalty},
			{&line.TotalFinal, final},
			{&line.TotalPaid, paid},
		}
		for _, a := range amounts {
			if *a.dst, err = kernel.NewMoney(a.src.Decimal.Round(2)); err != nil {
				return nil, err
			}
		}
		line.TotalOutstanding = line.TotalFinal.Sub(line.TotalPaid)

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
