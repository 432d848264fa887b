package workerrepo_test

import (
	"context"
	"testing"
	"time"

	"workorders/internal/adapters/out/postgres/dbtest"
	"workorders/internal/adapters/out/postgres/workerrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/worker"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func TestGormWorkerRepository(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenSqlite(t)

	t.Run("should add and get a worker", func(t *testing.T) {
		tracker := new(MockAggregateTracker)
		repo := workerrepo.NewGormWorkerRepository(db, tracker)
		w, err := worker.NewWorker(kernel.NewUUID(), "  Ada Lovelace ", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		tracker.On("TrackAggregate", w.ID(), w).Once()

		require.NoError(t, repo.Add(ctx, w))
		loaded, err := repo.Get(ctx, w.ID())

		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", loaded.Name())
		assert.True(t, loaded.CreatedAt().Equal(w.CreatedAt()))
		tracker.AssertExpectations(t)
	})

	t.Run("should refuse a duplicate id", func(t *testing.T) {
		tracker := new(MockAggregateTracker)
		tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
		repo := workerrepo.NewGormWorkerRepository(db, tracker)
		w, err := worker.NewWorker(kernel.NewUUID(), "Grace", time.Now())
		require.NoError(t, err)

		require.NoError(t, repo.Add(ctx, w))
		assert.Error(t, repo.Add(ctx, w))
	})

	t.Run("should report unknown workers as not found", func(t *testing.T) {
		repo := workerrepo.NewGormWorkerRepository(db, new(MockAggregateTracker))

		_, err := repo.Get(ctx, kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
