package http

import (
	"context"
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"

	"github.com/labstack/echo/v4"
)

// CreateWorkOrders handles POST /api/v1/work-orders: one order per assignment,
// all or nothing.
func (s *Server) CreateWorkOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createWorkOrdersRequest
	if err = bindAndValidate(c, &req); err != nil {
		return err
	}

	assignments := make([]commands.Assignment, len(req.Assignments))
	for i, a := range req.Assignments {
		workerID, idErr := kernel.UUIDFromString(a.WorkerID)
		if idErr != nil {
			return idErr
		}
		value, valueErr := kernel.NewMoney(*a.Value)
		if valueErr != nil {
			return valueErr
		}
		assignments[i] = commands.Assignment{WorkerID: workerID, Value: value}
	}

	cmd, err := commands.NewCreateWorkOrdersCommand(actor, workorder.Brief{
		Title:        req.Title,
		Description:  req.Description,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
	}, assignments)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateWorkOrders.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	ids := make([]string, len(cmd.WorkOrderIDs()))
	for i, id := range cmd.WorkOrderIDs() {
		ids[i] = id.String()
	}
	return c.JSON(http.StatusCreated, createWorkOrdersResponse{BatchID: cmd.BatchID().String(), WorkOrderIDs: ids})
}

// ListWorkOrders handles GET /api/v1/work-orders?worker_id=&state=&batch_id=.
func (s *Server) ListWorkOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var filter queries.WorkOrderFilter
	if raw := c.QueryParam("worker_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return idErr
		}
		filter.WorkerID = &id
	}
	if raw := c.QueryParam("batch_id"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return idErr
		}
		filter.BatchID = &id
	}
	if raw := c.QueryParam("state"); raw != "" {
		state, stateErr := workorder.ParseState(raw)
		if stateErr != nil {
			return stateErr
		}
		filter.State = &state
	}

	query, err := queries.NewListWorkOrdersQuery(actor, filter)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListWorkOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]workOrderResponse, len(views))
	for i, v := range views {
		response[i] = toWorkOrderResponse(v)
	}
	return c.JSON(http.StatusOK, response)
}

// GetWorkOrder handles GET /api/v1/work-orders/:id.
func (s *Server) GetWorkOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	return s.respondWithOrder(c, actor, id)
}

// EditWorkOrder handles PATCH /api/v1/work-orders/:id. Only fields present in
// the body change.
func (s *Server) EditWorkOrder(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		var req editWorkOrderRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		changes := workorder.Changes{
			Title:        req.Title,
			Description:  req.Description,
			Deadline:     req.Deadline,
			Requirements: req.Requirements,
		}
		if req.Value != nil {
			value, err := kernel.NewMoney(*req.Value)
			if err != nil {
				return err
			}
			changes.Value = &value
		}
		if req.WorkerID != nil {
			workerID, err := kernel.UUIDFromString(*req.WorkerID)
			if err != nil {
				return err
			}
			changes.WorkerID = &workerID
		}

		cmd, err := commands.NewEditWorkOrderCommand(actor, id, changes)
		if err != nil {
			return err
		}
		return s.handlers.EditWorkOrder.Handle(ctx, cmd)
	})
}

// SendForApproval handles POST /api/v1/work-orders/:id/send-for-approval.
func (s *Server) SendForApproval(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		cmd, err := commands.NewSendForApprovalCommand(actor, id)
		if err != nil {
			return err
		}
		return s.handlers.SendForApproval.Handle(ctx, cmd)
	})
}

// RespondToApproval handles POST /api/v1/work-orders/:id/respond.
func (s *Server) RespondToApproval(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		var req respondRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		cmd, err := commands.NewRespondToApprovalCommand(actor, id, *req.Accept)
		if err != nil {
			return err
		}
		return s.handlers.RespondToApproval.Handle(ctx, cmd)
	})
}

// RequestCompletion handles POST /api/v1/work-orders/:id/request-completion.
func (s *Server) RequestCompletion(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		cmd, err := commands.NewRequestCompletionCommand(actor, id)
		if err != nil {
			return err
		}
		return s.handlers.RequestCompletion.Handle(ctx, cmd)
	})
}

// ApproveCompletion handles POST /api/v1/work-orders/:id/approve-completion.
// The approval time settles the order.
func (s *Server) ApproveCompletion(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		cmd, err := commands.NewApproveCompletionCommand(actor, id)
		if err != nil {
			return err
		}
		return s.handlers.ApproveCompletion.Handle(ctx, cmd)
	})
}

// ExtendDeadline handles POST /api/v1/work-orders/:id/extend-deadline.
func (s *Server) ExtendDeadline(c echo.Context) error {
	return s.transition(c, func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error {
		var req extendDeadlineRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		cmd, err := commands.NewExtendDeadlineCommand(actor, id, req.Deadline)
		if err != nil {
			return err
		}
		return s.handlers.ExtendDeadline.Handle(ctx, cmd)
	})
}

// transition runs a command against the order in the path and answers with
// the order as it is afterwards.
func (s *Server) transition(
	c echo.Context,
	run func(ctx context.Context, actor kernel.Actor, id kernel.UUID) error,
) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err = run(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return s.respondWithOrder(c, actor, id)
}

func (s *Server) respondWithOrder(c echo.Context, actor kernel.Actor, id kernel.UUID) error {
	query, err := queries.NewGetWorkOrderQuery(actor, id)
	if err != nil {
		return err
	}
	view, err := s.handlers.GetWorkOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toWorkOrderResponse(view))
}
