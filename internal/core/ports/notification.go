package ports

import (
	"context"

	"workorders/internal/core/domain/model/notification"
)

// NotificationRepository is the transactional outbox of notifications.
type NotificationRepository interface {
	// Add stores a pending notification in the caller's transaction.
	Add(ctx context.Context, n *notification.Notification) error

	// ListPending returns up to limit unsent notifications, oldest first.
	ListPending(ctx context.Context, limit int) ([]*notification.Notification, error)

	// Update persists the delivery bookkeeping of a notification.
	Update(ctx context.Context, n *notification.Notification) error
}

// NotificationSender delivers one notification to its recipient.
type NotificationSender interface {
	Send(ctx context.Context, n *notification.Notification) error
}
