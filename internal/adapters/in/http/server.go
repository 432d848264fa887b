package http

import (
	"log/slog"
	"net/http"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	RegisterWorker    commands.RegisterWorkerCommandHandler
	CreateWorkOrders  commands.CreateWorkOrdersCommandHandler
	EditWorkOrder     commands.EditWorkOrderCommandHandler
	SendForApproval   commands.SendForApprovalCommandHandler
	RespondToApproval commands.RespondToApprovalCommandHandler
	RequestCompletion commands.RequestCompletionCommandHandler
	ApproveCompletion commands.ApproveCompletionCommandHandler
	ExtendDeadline    commands.ExtendDeadlineCommandHandler
	SetPaymentStatus  commands.SetPaymentStatusCommandHandler
	BulkMarkPaid      commands.BulkMarkPaidCommandHandler

	GetWorkOrder   queries.GetWorkOrderQueryHandler
	ListWorkOrders queries.ListWorkOrdersQueryHandler
	ListWorkers    queries.ListWorkersQueryHandler
	PayrollSummary queries.PayrollSummaryQueryHandler
}

// Server translates HTTP requests into commands and queries. The caller's
// identity comes from the bearer token verified by the auth middleware.
type Server struct {
	handlers  Handlers
	jwtSecret []byte
	logger    *slog.Logger
}

func NewServer(handlers Handlers, jwtSecret []byte, logger *slog.Logger) *Server {
	return &Server{
		handlers:  handlers,
		jwtSecret: jwtSecret,
		logger:    logger.With("component", "http"),
	}
}

// NewEcho builds the echo instance with validation, error mapping, request
// logging and every route registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = s.handleError
	e.Use(s.requestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1", s.authenticate)

	api.POST("/workers", s.RegisterWorker)
	api.GET("/workers", s.ListWorkers)

	api.POST("/work-orders", s.CreateWorkOrders)
	api.GET("/work-orders", s.ListWorkOrders)
	api.GET("/work-orders/:id", s.GetWorkOrder)
	api.PATCH("/work-orders/:id", s.EditWorkOrder)
	api.POST("/work-orders/:id/send-for-approval", s.SendForApproval)
	api.POST("/work-orders/:id/respond", s.RespondToApproval)
	api.POST("/work-orders/:id/request-completion", s.RequestCompletion)
	api.POST("/work-orders/:id/approve-completion", s.ApproveCompletion)
	api.POST("/work-orders/:id/extend-deadline", s.ExtendDeadline)
	api.PUT("/work-orders/:id/payment", s.SetPaymentStatus)

	api.POST("/payments/bulk-pay", s.BulkMarkPaid)

	api.GET("/reports/payroll", s.PayrollSummary, requireAdmin)

	return e
}
