package commands_test

import (
	"errors"
	"testing"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/worker"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registeredWorkers(t *testing.T, n int) []*worker.Worker {
	t.Helper()
	workers := make([]*worker.Worker, n)
	for i := range workers {
		w, err := worker.NewWorker(kernel.NewUUID(), "worker", testNow)
		require.NoError(t, err)
		workers[i] = w
	}
	return workers
}

func brief() workorder.Brief {
	return workorder.Brief{
		Title:        "Repaint lobby",
		Description:  "Ground floor only",
		Deadline:     testDeadline,
		Requirements: []string{"drop cloths", "two coats"},
	}
}

func TestNewCreateWorkOrdersCommand(t *testing.T) {
	c := newCast(t)
	w := kernel.NewUUID()

	t.Run("generates one id per assignment", func(t *testing.T) {
		cmd, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), []commands.Assignment{
			{WorkerID: w, Value: money(t, 100000)},
			{WorkerID: kernel.NewUUID(), Value: money(t, 200000)},
		})

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		ids := cmd.WorkOrderIDs()
		require.Len(t, ids, 2)
		assert.False(t, ids[0].IsEqual(ids[1]))
		require.NoError(t, cmd.BatchID().Validate())
	})

	t.Run("rejects duplicate workers", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), []commands.Assignment{
			{WorkerID: w, Value: money(t, 1)},
			{WorkerID: w, Value: money(t, 2)},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "already assigned at index 0")
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		_, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestCreateWorkOrdersCommandHandler_Handle(t *testing.T) {
	c := newCast(t)

	t.Run("creates independent drafts sharing a batch", func(t *testing.T) {
		ws := registeredWorkers(t, 3)
		cmd, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), []commands.Assignment{
			{WorkerID: ws[0].ID(), Value: money(t, 100000)},
			{WorkerID: ws[1].ID(), Value: money(t, 200000)},
			{WorkerID: ws[2].ID(), Value: money(t, 300000)},
		})
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.uow.On("WorkOrderRepository").Return(m.orders).Once()
		for _, w := range ws {
			m.workers.On("Get", mock.Anything, w.ID()).Return(w, nil).Once()
		}

		var created []*workorder.WorkOrder
		m.orders.On("Add", mock.Anything, mock.AnythingOfType("*workorder.WorkOrder")).
			Run(func(args mock.Arguments) { created = append(created, args.Get(1).(*workorder.WorkOrder)) }).
			Return(nil).Times(3)
		m.uow.On("Commit", mock.Anything).Return(nil).Once()
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		handler := commands.NewCreateWorkOrdersCommandHandler(m.uowFacade, fixedClock(testNow), testLogger)
		err = handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.Len(t, created, 3)
		for i, o := range created {
			assert.True(t, o.ID().IsEqual(cmd.WorkOrderIDs()[i]))
			assert.True(t, o.BatchID().IsEqual(cmd.BatchID()))
			assert.True(t, o.WorkerID().IsEqual(ws[i].ID()))
			assert.Equal(t, workorder.Draft, o.State())
			assert.Equal(t, "Repaint lobby", o.Title())
		}
		assert.Equal(t, "200000", created[1].Value().String())
		m.assertAll(t)
	})

	t.Run("one invalid value persists nothing", func(t *testing.T) {
		ws := registeredWorkers(t, 2)
		cmd, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), []commands.Assignment{
			{WorkerID: ws[0].ID(), Value: money(t, 100000)},
			{WorkerID: ws[1].ID(), Value: kernel.ZeroMoney()},
		})
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.uow.On("WorkOrderRepository").Return(m.orders).Once()
		m.workers.On("Get", mock.Anything, mock.Anything).Return(ws[0], nil)
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		err = commands.NewCreateWorkOrdersCommandHandler(m.uowFacade, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "assignments[1]")
		m.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("an unknown worker persists nothing", func(t *testing.T) {
		unknown := kernel.NewUUID()
		cmd, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), []commands.Assignment{
			{WorkerID: unknown, Value: money(t, 100000)},
		})
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.uow.On("WorkOrderRepository").Return(m.orders).Once()
		m.workers.On("Get", mock.Anything, unknown).Return(nil, errs.NewObjectNotFoundError("worker", unknown.String())).Once()
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		err = commands.NewCreateWorkOrdersCommandHandler(m.uowFacade, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.False(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "assignments[0]")
		m.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("a past deadline persists nothing", func(t *testing.T) {
		ws := registeredWorkers(t, 1)
		b := brief()
		b.Deadline = testNow.Add(-1)
		cmd, err := commands.NewCreateWorkOrdersCommand(c.admin, b, []commands.Assignment{
			{WorkerID: ws[0].ID(), Value: money(t, 100000)},
		})
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.uow.On("WorkOrderRepository").Return(m.orders).Once()
		m.workers.On("Get", mock.Anything, ws[0].ID()).Return(ws[0], nil).Once()
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		err = commands.NewCreateWorkOrdersCommandHandler(m.uowFacade, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "is not in the future")
	})

	t.Run("a worker cannot issue orders", func(t *testing.T) {
		cmd, err := commands.NewCreateWorkOrdersCommand(c.worker, brief(), []commands.Assignment{
			{WorkerID: c.worker.ID(), Value: money(t, 1)},
		})
		require.NoError(t, err)
		m := newTransitionMocks()

		err = commands.NewCreateWorkOrdersCommandHandler(m.uowFacade, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrActorIsUnauthorized)
		m.factory.AssertNotCalled(t, "Create")
	})

	t.Run("a storage failure aborts the batch", func(t *testing.T) {
		ws := registeredWorkers(t, 2)
		cmd, err := commands.NewCreateWorkOrdersCommand(c.admin, brief(), []commands.Assignment{
			{WorkerID: ws[0].ID(), Value: money(t, 1)},
			{WorkerID: ws[1].ID(), Value: money(t, 2)},
		})
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.uow.On("WorkOrderRepository").Return(m.orders).Once()
		m.workers.On("Get", mock.Anything, ws[0].ID()).Return(ws[0], nil).Once()
		m.workers.On("Get", mock.Anything, ws[1].ID()).Return(ws[1], nil).Once()
		m.orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
		m.orders.On("Add", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		err = commands.NewCreateWorkOrdersCommandHandler(m.uowFacade, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.EqualError(t, err, "disk full")
		m.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestRegisterWorkerCommandHandler_Handle(t *testing.T) {
	c := newCast(t)

	t.Run("admin registers a worker", func(t *testing.T) {
		id := kernel.NewUUID()
		cmd, err := commands.NewRegisterWorkerCommand(c.admin, id, "Dewi")
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.workers.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("worker", id.String())).Once()
		m.workers.On("Add", mock.Anything, mock.MatchedBy(func(w *worker.Worker) bool {
			return w.ID().IsEqual(id) && w.Name() == "Dewi"
		})).Return(nil).Once()
		m.uow.On("Commit", mock.Anything).Return(nil).Once()
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		err = commands.NewRegisterWorkerCommandHandler(workerUoWFactory{m.factory}, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.NoError(t, err)
		m.assertAll(t)
	})

	t.Run("a registered id is refused", func(t *testing.T) {
		existing := registeredWorkers(t, 1)[0]
		cmd, err := commands.NewRegisterWorkerCommand(c.admin, existing.ID(), "Again")
		require.NoError(t, err)

		m := newTransitionMocks()
		m.factory.On("Create").Return(m.uow).Once()
		m.uow.On("Begin", mock.Anything).Return(nil).Once()
		m.uow.On("WorkerRepository").Return(m.workers).Once()
		m.workers.On("Get", mock.Anything, existing.ID()).Return(existing, nil).Once()
		m.uow.On("Rollback", mock.Anything).Return(nil).Once()

		err = commands.NewRegisterWorkerCommandHandler(workerUoWFactory{m.factory}, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		m.workers.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("a worker cannot register workers", func(t *testing.T) {
		cmd, err := commands.NewRegisterWorkerCommand(c.worker, kernel.NewUUID(), "Eka")
		require.NoError(t, err)
		m := newTransitionMocks()

		err = commands.NewRegisterWorkerCommandHandler(workerUoWFactory{m.factory}, fixedClock(testNow), testLogger).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrActorIsUnauthorized)
		m.factory.AssertNotCalled(t, "Create")
	})
}
