package queries

import (
	"context"
	"log/slog"

	"workorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListWorkersQueryHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewListWorkersQueryHandler(db *gorm.DB, logger *slog.Logger) ListWorkersQueryHandler {
	return ListWorkersQueryHandler{db: db, logger: logger}
}

func (h ListWorkersQueryHandler) Handle(ctx context.Context, query ListWorkersQuery) ([]WorkerView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return readWithRetry(ctx, h.logger, "list workers", func() ([]WorkerView, error) {
		return h.read(ctx)
	})
}

func (h ListWorkersQueryHandler) read(ctx context.Context) ([]WorkerView, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			created_at
		FROM workers
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]WorkerView, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			view WorkerView
		)
		if err = rows.Scan(&id, &view.Name, &view.CreatedAt); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		view.CreatedAt = view.CreatedAt.UTC()
		workers = append(workers, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return workers, nil
}
