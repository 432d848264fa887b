package rabbitmq

import (
	"context"
	"log/slog"

	"workorders/internal/core/domain/model/notification"
)

// LoggingSender stands in for the broker when none is configured.
type LoggingSender struct {
	logger *slog.Logger
}

func NewLoggingSender(logger *slog.Logger) *LoggingSender {
	return &LoggingSender{logger: logger.With("component", "LoggingSender")}
}

func (s *LoggingSender) Send(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "notification",
		"notification_id", n.ID().String(),
		"kind", string(n.Kind()),
		"recipient_id", n.RecipientID().String(),
		"work_order_id", n.WorkOrderID().String(),
		"state", n.State().String(),
	)
	return nil
}
