package http

import (
	"context"
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

// SetPaymentStatus handles PUT /api/v1/work-orders/:id/payment.
func (s *Server) SetPaymentStatus(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		var req setPaymentStatusRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		status, err := payment.ParseStatus(req.Status)
		if err != nil {
			return err
		}
		cmd, err := commands.NewSetPaymentStatusCommand(actor, id, status)
		if err != nil {
			return err
		}
		return s.handlers.SetPaymentStatus.Handle(ctx, cmd)
	})
}

// BulkMarkPaid handles POST /api/v1/payments/bulk-pay. The response carries
// one result per distinct order; a failing order does not fail the request.
func (s *Server) BulkMarkPaid(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req bulkPayRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	ids := make([]kernel.UUID, len(req.WorkOrderIDs))
	for i, raw := range req.WorkOrderIDs {
		if ids[i], err = kernel.UUIDFromString(raw); err != nil {
			return err
		}
	}

	cmd, err := commands.NewBulkMarkPaidCommand(actor, ids)
	if err != nil {
		return err
	}
	outcomes, err := s.handlers.BulkMarkPaid.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBulkPayResponse(outcomes))
}
