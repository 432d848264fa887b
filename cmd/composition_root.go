package cmd

import (
	"log/slog"
	"time"

	httpin "workorders/internal/adapters/in/http"
	"workorders/internal/adapters/out/postgres"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/ports"
	"workorders/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use cases. Every command handler gets a
// unit of work factory narrowed to the repositories it touches.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	sender     ports.NotificationSender
	clock      ports.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	sender ports.NotificationSender,
	clock ports.Clock,
	logger *slog.Logger,
) CompositionRoot {
	if clock == nil {
		clock = ports.ClockFunc(time.Now)
	}
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		sender:     sender,
		clock:      clock,
		logger:     logger,
	}
}

func (c *CompositionRoot) workOrderUoWFactory() commands.WorkOrderUoWFactory {
	return FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) workerUoWFactory() commands.WorkerUoWFactory {
	return FuncWorkerUoWFactory(func() commands.WorkerUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return FuncPaymentUoWFactory(func() commands.PaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSetPaymentStatusCommandHandler() commands.SetPaymentStatusCommandHandler {
	return commands.NewSetPaymentStatusCommandHandler(c.paymentUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	return commands.NewRelayNotificationsCommandHandler(c.notificationUoWFactory(), c.sender, c.clock, c.logger)
}

func (c *CompositionRoot) CreatePayrollSummaryQueryHandler() queries.PayrollSummaryQueryHandler {
	return queries.NewPayrollSummaryQueryHandler(c.gormDB, c.logger)
}

// HTTPHandlers builds every use case the HTTP adapter serves.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	workOrders := c.workOrderUoWFactory()
	setPaymentStatus := c.CreateSetPaymentStatusCommandHandler()

	return httpin.Handlers{
		RegisterWorker:    commands.NewRegisterWorkerCommandHandler(c.workerUoWFactory(), c.clock, c.logger),
		CreateWorkOrders:  commands.NewCreateWorkOrdersCommandHandler(workOrders, c.clock, c.logger),
		EditWorkOrder:     commands.NewEditWorkOrderCommandHandler(workOrders, c.clock, c.logger),
		SendForApproval:   commands.NewSendForApprovalCommandHandler(workOrders, c.clock, c.logger),
		RespondToApproval: commands.NewRespondToApprovalCommandHandler(workOrders, c.clock, c.logger),
		RequestCompletion: commands.NewRequestCompletionCommandHandler(workOrders, c.clock, c.logger),
		ApproveCompletion: commands.NewApproveCompletionCommandHandler(workOrders, c.clock, c.logger),
		ExtendDeadline:    commands.NewExtendDeadlineCommandHandler(workOrders, c.clock, c.logger),
		SetPaymentStatus:  setPaymentStatus,
		BulkMarkPaid:      commands.NewBulkMarkPaidCommandHandler(setPaymentStatus, c.config.BulkPayConcurrency, c.logger),

		GetWorkOrder:   queries.NewGetWorkOrderQueryHandler(c.gormDB, c.logger),
		ListWorkOrders: queries.NewListWorkOrdersQueryHandler(c.gormDB, c.logger),
		ListWorkers:    queries.NewListWorkersQueryHandler(c.gormDB, c.logger),
		PayrollSummary: c.CreatePayrollSummaryQueryHandler(),
	}
}

func (c *CompositionRoot) NewHTTPServer() *httpin.Server {
	return httpin.NewServer(c.HTTPHandlers(), []byte(c.config.JWTSecret), c.logger)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayNotificationsCommandHandler(),
		c.config.NotificationRelaySpec,
		c.config.RelayBatchSize,
		c.logger,
	)
}

type FuncWorkOrderUoWFactory func() commands.WorkOrderUoW

func (f FuncWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return f()
}

type FuncWorkerUoWFactory func() commands.WorkerUoW

func (f FuncWorkerUoWFactory) Create() commands.WorkerUoW {
	return f()
}

type FuncPaymentUoWFactory func() commands.PaymentUoW

func (f FuncPaymentUoWFactory) Create() commands.PaymentUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
