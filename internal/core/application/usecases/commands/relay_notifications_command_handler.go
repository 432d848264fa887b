package commands

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/ports"
)

// RelayResult counts what one relay run did.
type RelayResult struct {
	Sent   int
	Failed int
}

// DefaultSendTimeout bounds a single publish to the broker.
const DefaultSendTimeout = 10 * time.Second

// RelayNotificationsCommandHandler publishes pending outbox rows through the
// sender and records each delivery attempt. Failed rows stay pending and are
// picked up again by the next run, so delivery is at least once. The relay
// never reads or locks work orders.
//
// A run uses two short transactions: one to read the batch and one to
// record the outcomes. Publishing happens between them, outside any
// transaction, with every send bounded by the send timeout.
type RelayNotificationsCommandHandler struct {
	uowFactory  NotificationUoWFactory
	sender      ports.NotificationSender
	clock       ports.Clock
	sendTimeout time.Duration
	logger      *slog.Logger
}

func NewRelayNotificationsCommandHandler(
	uowFactory NotificationUoWFactory,
	sender ports.NotificationSender,
	clock ports.Clock,
	logger *slog.Logger,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{
		uowFactory:  uowFactory,
		sender:      sender,
		clock:       clock,
		sendTimeout: DefaultSendTimeout,
		logger:      logger.With("component", "notification_relay"),
	}
}

// WithSendTimeout returns a copy of the handler that bounds each publish by d.
// Non-positive values keep the current timeout.
func (h RelayNotificationsCommandHandler) WithSendTimeout(d time.Duration) RelayNotificationsCommandHandler {
	if d > 0 {
		h.sendTimeout = d
	}
	return h
}

func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, command RelayNotificationsCommand) (RelayResult, error) {
	var result RelayResult
	if err := command.Validate(); err != nil {
		return result, err
	}

	pending, err := h.loadPending(ctx, command.BatchSize())
	if err != nil {
		return result, err
	}
	if len(pending) == 0 {
		return result, nil
	}

	for _, n := range pending {
		if sendErr := h.send(ctx, n); sendErr != nil {
			n.MarkFailed(sendErr)
			result.Failed++
			h.logger.WarnContext(ctx, "notification delivery failed",
				"notification_id", n.ID().String(),
				"kind", string(n.Kind()),
				"attempts", n.Attempts(),
				"error", sendErr,
			)
		} else {
			n.MarkSent(h.clock.Now())
			result.Sent++
		}
	}

	// Outcomes are recorded even when the run was cancelled mid-batch, so
	// delivered rows are not published a second time.
	if err = h.recordOutcomes(context.WithoutCancel(ctx), pending); err != nil {
		return result, err
	}

	h.logger.InfoContext(ctx, "notifications relayed", "sent", result.Sent, "failed", result.Failed)
	return result, nil
}

func (h RelayNotificationsCommandHandler) loadPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.NotificationRepository().ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return pending, nil
}

func (h RelayNotificationsCommandHandler) send(ctx context.Context, n *notification.Notification) error {
	sendCtx, cancel := context.WithTimeout(ctx, h.sendTimeout)
	defer cancel()

	return h.sender.Send(sendCtx, n)
}

func (h RelayNotificationsCommandHandler) recordOutcomes(ctx context.Context, relayed []*notification.Notification) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.NotificationRepository()
	for _, n := range relayed {
		if err := repo.Update(ctx, n); err != nil {
			return err
		}
	}
	return uow.Commit(ctx)
}
