package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"workorders/internal/core/domain/model/notification"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange receives every work order notification.
const DefaultExchange = "work_orders.notifications"

type publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

// NotificationMessage is the JSON body of a published notification.
type NotificationMessage struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	RecipientID string    `json:"recipient_id"`
	WorkOrderID string    `json:"work_order_id"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// NotificationSender publishes notifications with the event kind as routing
// key. The notification ID doubles as message ID so consumers can drop the
// duplicates at-least-once delivery may produce.
type NotificationSender struct {
	publisher publisher
	exchange  string
}

func NewNotificationSender(publisher publisher, exchange string) *NotificationSender {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &NotificationSender{publisher: publisher, exchange: exchange}
}

func (s *NotificationSender) Send(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(NotificationMessage{
		ID:          n.ID().String(),
		Kind:        string(n.Kind()),
		RecipientID: n.RecipientID().String(),
		WorkOrderID: n.WorkOrderID().String(),
		State:       n.State().String(),
		CreatedAt:   n.CreatedAt().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal notification %s: %w", n.ID(), err)
	}

	err = s.publisher.Publish(ctx, s.exchange, string(n.Kind()), amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    n.ID().String(),
		Timestamp:    n.CreatedAt().UTC(),
		Headers: amqp.Table{
			"x-recipient-id": n.RecipientID().String(),
		},
		Body: body,
	})
	if err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID(), err)
	}
	return nil
}
