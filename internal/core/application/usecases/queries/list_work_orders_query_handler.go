package queries

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"
)

type ListWorkOrdersQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewListWorkOrdersQueryHandler(db *gorm.DB, logger *slog.Logger) ListWorkOrdersQueryHandler {
	return ListWorkOrdersQueryHandler{db: db, logger: logger}
}

func (h ListWorkOrdersQueryHandler) Handle(ctx context.Context, query ListWorkOrdersQuery) ([]WorkOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return readWithRetry(ctx, h.logger, "list work orders", func() ([]WorkOrderView, error) {
		return h.read(ctx, query.Filter())
	})
}

func (h ListWorkOrdersQueryHandler) read(ctx context.Context, filter WorkOrderFilter) ([]WorkOrderView, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.WorkerID != nil {
		conditions = append(conditions, "o.worker_id = ?")
		args = append(args, filter.WorkerID.Bytes())
	}
	if filter.State != nil {
		conditions = append(conditions, "o.state = ?")
		args = append(args, filter.State.String())
	}
	if filter.BatchID != nil {
		conditions = append(conditions, "o.batch_id = ?")
		args = append(args, filter.BatchID.Bytes())
	}

	sql := workOrderViewSelect
	if len(conditions) > 0 {
		sql += "\n\tWHERE " + strings.Join(conditions, " AND ")
	}
	sql += "\n\tORDER BY o.created_at DESC, o.id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]WorkOrderView, 0)
	for rows.Next() {
		view, scanErr := scanWorkOrderView(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}
