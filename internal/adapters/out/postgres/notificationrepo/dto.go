// Package notificationrepo stores the notification outbox. Rows are written in
// the same transaction as the work order change that produced them and are
// marked sent by the relay.
package notificationrepo

import (
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/workorder"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID  `gorm:"type:uuid;index;not null"`
	EventKind   string     `gorm:"size:64;not null"`
	WorkOrderID uuid.UUID  `gorm:"type:uuid;index;not null"`
	State       string     `gorm:"size:32;not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false;index;not null"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   string     `gorm:"size:500"`
	SentAt      *time.Time `gorm:"index"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:          n.ID().Bytes(),
		RecipientID: n.RecipientID().Bytes(),
		EventKind:   string(n.Kind()),
		WorkOrderID: n.WorkOrderID().Bytes(),
		State:       n.State().String(),
		CreatedAt:   n.CreatedAt().UTC(),
		Attempts:    n.Attempts(),
		LastError:   n.LastError(),
	}
	if s := n.SentAt(); s != nil {
		u := s.UTC()
		dto.SentAt = &u
	}
	return dto
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}
	workOrderID, err := kernel.UUIDFromBytes(dto.WorkOrderID[:])
	if err != nil {
		return nil, err
	}
	state, err := workorder.ParseState(dto.State)
	if err != nil {
		return nil, err
	}

	var sentAt *time.Time
	if dto.SentAt != nil {
		u := dto.SentAt.UTC()
		sentAt = &u
	}

	return notification.RestoreNotification(notification.Snapshot{
		ID:          id,
		RecipientID: recipientID,
		Kind:        notification.EventKind(dto.EventKind),
		WorkOrderID: workOrderID,
		State:       state,
		CreatedAt:   dto.CreatedAt.UTC(),
		Attempts:    dto.Attempts,
		LastError:   dto.LastError,
		SentAt:      sentAt,
	})
}
