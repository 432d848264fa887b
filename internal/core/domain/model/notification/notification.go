// Package notification models the outbox entry written for every successful
// work order transition and later relayed to the counterpart of the action.
package notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"
)

// EventKind names what happened to the work order. It doubles as the broker routing key.
type EventKind string

const (
	ApprovalRequested   EventKind = "work_order.approval_requested"
	Accepted            EventKind = "work_order.accepted"
	Rejected            EventKind = "work_order.rejected"
	CompletionRequested EventKind = "work_order.completion_requested"
	CompletedOnTime     EventKind = "work_order.completed_on_time"
	CompletedLate       EventKind = "work_order.completed_late"
)

// lastErrorLimit bounds the stored failure reason.
const lastErrorLimit = 500

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// KindFor returns the event emitted when an order enters state.
func KindFor(state workorder.State) (EventKind, error) {
	switch state {
	case workorder.PendingApproval:
		return ApprovalRequested, nil
	case workorder.Active:
		return Accepted, nil
	case workorder.Rejected:
		return Rejected, nil
	case workorder.CompletionRequested:
		return CompletionRequested, nil
	case workorder.DoneOnTime:
		return CompletedOnTime, nil
	case workorder.DoneLate:
		return CompletedLate, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("event kind", fmt.Errorf("no event for %s", state))
	}
}

// Notification is one pending or delivered message to a single recipient.
type Notification struct {
	id          kernel.UUID
	recipientID kernel.UUID
	kind        EventKind
	workOrderID kernel.UUID
	state       workorder.State
	createdAt   time.Time
	attempts    int
	lastError   string
	sentAt      *time.Time

	isConstructed bool
}

// NewNotification records that order entered its current state because of actor.
// The recipient is the counterpart of actor on that order.
func NewNotification(id kernel.UUID, order *workorder.WorkOrder, actor kernel.Actor, now time.Time) (*Notification, error) {
	if err := errors.Join(id.Validate(), order.Validate(), actor.Validate()); err != nil {
		return nil, err
	}
	kind, err := KindFor(order.State())
	if err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		recipientID:   order.CounterpartOf(actor),
		kind:          kind,
		workOrderID:   order.ID(),
		state:         order.State(),
		createdAt:     now,
		isConstructed: true,
	}, nil
}

// Snapshot carries the persisted fields of a Notification.
type Snapshot struct {
	ID          kernel.UUID
	RecipientID kernel.UUID
	Kind        EventKind
	WorkOrderID kernel.UUID
	State       workorder.State
	CreatedAt   time.Time
	Attempts    int
	LastError   string
	SentAt      *time.Time
}

// RestoreNotification rebuilds a stored notification, keeping its delivery
// attempts and sent time.
func RestoreNotification(s Snapshot) (*Notification, error) {
	if err := errors.Join(s.ID.Validate(), s.RecipientID.Validate(), s.WorkOrderID.Validate(), s.State.Validate()); err != nil {
		return nil, err
	}
	if s.Kind == "" {
		return nil, errs.NewValueIsRequiredError("event kind")
	}
	if s.Attempts < 0 {
		return nil, errs.NewValueIsOutOfRangeError("attempts", s.Attempts, 0, "unbounded")
	}

	return &Notification{
		id:            s.ID,
		recipientID:   s.RecipientID,
		kind:          s.Kind,
		workOrderID:   s.WorkOrderID,
		state:         s.State,
		createdAt:     s.CreatedAt,
		attempts:      s.Attempts,
		lastError:     s.LastError,
		sentAt:        s.SentAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the notification was built through a constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

// RecipientID is the user the event is addressed to.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Kind names the lifecycle event and doubles as the routing key.
func (n *Notification) Kind() EventKind {
	return n.kind
}

func (n *Notification) WorkOrderID() kernel.UUID {
	return n.workOrderID
}

// State is the order state right after the event.
func (n *Notification) State() workorder.State {
	return n.state
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// Attempts counts failed deliveries so far.
func (n *Notification) Attempts() int {
	return n.attempts
}

// LastError is the message of the most recent failed delivery, empty if none.
func (n *Notification) LastError() string {
	return n.lastError
}

func (n *Notification) SentAt() *time.Time {
	return n.sentAt
}

// IsSent reports whether a delivery has succeeded.
func (n *Notification) IsSent() bool {
	return n.sentAt != nil
}

// MarkSent records a successful delivery.
func (n *Notification) MarkSent(now time.Time) {
	n.attempts++
	n.sentAt = &now
	n.lastError = ""
}

// MarkFailed records a failed delivery; the relay retries it on its next run.
func (n *Notification) MarkFailed(cause error) {
	n.attempts++
	msg := strings.TrimSpace(cause.Error())
	if len(msg) > lastErrorLimit {
		msg = msg[:lastErrorLimit]
	}
	n.lastError = msg
}
