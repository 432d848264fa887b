package queries

import (
	"context"
	"log/slog"

	"workorders/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetWorkOrderQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewGetWorkOrderQueryHandler(db *gorm.DB, logger *slog.Logger) GetWorkOrderQueryHandler {
	return GetWorkOrderQueryHandler{db: db, logger: logger}
}

// Handle returns errs.ErrObjectNotFound for unknown orders and
// errs.ErrActorIsUnauthorized when a worker asks for someone else's order.
func (h GetWorkOrderQueryHandler) Handle(ctx context.Context, query GetWorkOrderQuery) (WorkOrderView, error) {
	if err := query.Validate(); err != nil {
		return WorkOrderView{}, err
	}

	view, err := readWithRetry(ctx, h.logger, "get work order", func() (WorkOrderView, error) {
		return h.read(ctx, query)
	})
	if err != nil {
		return WorkOrderView{}, err
	}

	actor := query.Actor()
	if !actor.IsAdmin() && !actor.Is(view.WorkerID) {
		return WorkOrderView{}, errs.NewActorIsUnauthorizedError(
			actor.ID().String(), "view work order", "not the assigned worker",
		)
	}
	return view, nil
}

func (h GetWorkOrderQueryHandler) read(ctx context.Context, query GetWorkOrderQuery) (WorkOrderView, error) {
	rows, err := h.db.WithContext(ctx).Raw(workOrderViewSelect+`
		WHERE o.id = ?
	`, query.WorkOrderID().Bytes()).Rows()
	if err != nil {
		return WorkOrderView{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return WorkOrderView{}, err
		}
		return WorkOrderView{}, errs.NewObjectNotFoundError("work order", query.WorkOrderID().String())
	}

	return scanWorkOrderView(rows)
}
