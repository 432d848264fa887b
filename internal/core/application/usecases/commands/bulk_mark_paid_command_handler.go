package commands

import (
	"context"
	"log/slog"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// DefaultBulkPayConcurrency bounds the orders settled at the same time.
const DefaultBulkPayConcurrency = 8

// PaymentOutcome is the result for one order of a bulk payment. Err is nil on success.
type PaymentOutcome struct {
	WorkOrderID kernel.UUID
	Err         error
}

// BulkMarkPaidCommandHandler marks every order in its own transaction so a
// failing order never blocks the others.
type BulkMarkPaidCommandHandler struct {
	markPaid    SetPaymentStatusCommandHandler
	concurrency int
	logger      *slog.Logger
}

func NewBulkMarkPaidCommandHandler(
	markPaid SetPaymentStatusCommandHandler,
	concurrency int,
	logger *slog.Logger,
) BulkMarkPaidCommandHandler {
	if concurrency <= 0 {
		concurrency = DefaultBulkPayConcurrency
	}
	return BulkMarkPaidCommandHandler{
		markPaid:    markPaid,
		concurrency: concurrency,
		logger:      logger.With("component", "bulk_mark_paid_handler"),
	}
}

// Handle returns one outcome per distinct ID, in request order. The error is
// reserved for a refused command; per-order failures are reported in the outcomes.
func (h BulkMarkPaidCommandHandler) Handle(ctx context.Context, command BulkMarkPaidCommand) ([]PaymentOutcome, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}
	if !command.Actor().IsAdmin() {
		h.logger.WarnContext(ctx, "unauthorized payment action", "action", "bulk mark paid", "actor", command.Actor().String())
		return nil, errs.NewActorIsUnauthorizedError(command.Actor().ID().String(), "bulk mark paid", "admin only")
	}

	ids := command.WorkOrderIDs()
	outcomes := make([]PaymentOutcome, len(ids))

	var g errgroup.Group
	g.SetLimit(h.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			outcomes[i] = PaymentOutcome{WorkOrderID: id, Err: h.markOne(ctx, command.Actor(), id)}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	h.logger.InfoContext(ctx, "bulk payment finished", "requested", len(ids), "failed", failed)

	return outcomes, nil
}

func (h BulkMarkPaidCommandHandler) markOne(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
	cmd, err := NewMarkPaidCommand(actor, id)
	if err != nil {
		return err
	}
	return h.markPaid.Handle(ctx, cmd)
}
