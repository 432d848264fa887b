package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/core/domain/model/worker"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testNow      = time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	testDeadline = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	testLogger   = slog.New(slog.DiscardHandler)
)

func fixedClock(t time.Time) ports.Clock {
	return ports.ClockFunc(func() time.Time { return t })
}

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, o *workorder.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Update(ctx context.Context, o *workorder.WorkOrder) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

func (m *MockWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workorder.WorkOrder), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Add(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Get(ctx context.Context, id kernel.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, p *payment.PaymentRecord) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.PaymentRecord), args.Error(1)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListPending(ctx context.Context, limit int) ([]*notification.Notification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockNotificationSender struct{ mock.Mock }

func (m *MockNotificationSender) Send(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockUoW implements every unit of work flavour the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkOrderRepository)
}

func (m *MockUoW) WorkerRepository() ports.WorkerRepository {
	args := m.Called()
	return args.Get(0).(ports.WorkerRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) create() *MockUoW {
	args := m.MethodCalled("Create")
	return args.Get(0).(*MockUoW)
}

type workOrderUoWFactory struct{ *MockUoWFactory }

func (f workOrderUoWFactory) Create() commands.WorkOrderUoW { return f.create() }

type workerUoWFactory struct{ *MockUoWFactory }

func (f workerUoWFactory) Create() commands.WorkerUoW { return f.create() }

type paymentUoWFactory struct{ *MockUoWFactory }

func (f paymentUoWFactory) Create() commands.PaymentUoW { return f.create() }

type notificationUoWFactory struct{ *MockUoWFactory }

func (f notificationUoWFactory) Create() commands.NotificationUoW { return f.create() }

// actors and orders

type cast struct {
	admin    kernel.Actor
	worker   kernel.Actor
	stranger kernel.Actor
}

func newCast(t *testing.T) cast {
	t.Helper()

	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	w, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)
	stranger, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)

	return cast{admin: admin, worker: w, stranger: stranger}
}

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(amount)
	require.NoError(t, err)
	return m
}

// orderIn restores an order of c.admin assigned to c.worker in the given state.
func orderIn(t *testing.T, c cast, state workorder.State) *workorder.WorkOrder {
	t.Helper()

	value := money(t, 1000000)
	s := workorder.Snapshot{
		ID:        kernel.NewUUID(),
		BatchID:   kernel.NewUUID(),
		CreatedBy: c.admin.ID(),
		WorkerID:  c.worker.ID(),
		Title:     "Install cabinets",
		Value:     value,
		Deadline:  testDeadline,
		State:     state,
		CreatedAt: testNow.Add(-48 * time.Hour),
		UpdatedAt: testNow.Add(-48 * time.Hour),
		Version:   3,
	}
	if state.IsCompleted() {
		completedAt := testNow.Add(-time.Hour)
		settlement, err := workorder.NewSettlement(value, 0, 0, kernel.ZeroMoney(), value)
		require.NoError(t, err)
		s.State = workorder.DoneOnTime
		s.CompletedAt = &completedAt
		s.Settlement = &settlement
	}

	o, err := workorder.RestoreWorkOrder(s)
	require.NoError(t, err)
	return o
}
