// Package dbtest opens throwaway databases and builds persisted fixtures for
// repository, query and end-to-end tests.
package dbtest

import (
	"testing"
	"time"

	"workorders/internal/adapters/out/postgres"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/core/domain/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// OpenSqlite returns a migrated in-memory sqlite database private to t.
func OpenSqlite(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(postgres.ConnectionSettings{
		Driver:     postgres.DriverSqlite,
		SqlitePath: "file:" + kernel.NewUUID().String() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

// Order describes a work order fixture. Zero fields get defaults.
type Order struct {
	ID          kernel.UUID
	CreatedBy   kernel.UUID
	WorkerID    kernel.UUID
	Title       string
	Value       int64
	Deadline    time.Time
	State       workorder.State
	CompletedAt time.Time
	CreatedAt   time.Time
	Version     int
}

// Build restores the described order. Completed states get a settlement
// computed from Deadline and CompletedAt, and the state is taken from it.
func (o Order) Build(t testing.TB) *workorder.WorkOrder {
	t.Helper()

	if o.ID == (kernel.UUID{}) {
		o.ID = kernel.NewUUID()
	}
	if o.CreatedBy == (kernel.UUID{}) {
		o.CreatedBy = kernel.NewUUID()
	}
	if o.WorkerID == (kernel.UUID{}) {
		o.WorkerID = kernel.NewUUID()
	}
	if o.Title == "" {
		o.Title = "Paint the fence"
	}
	if o.Value == 0 {
		o.Value = 1000000
	}
	if o.Deadline.IsZero() {
		o.Deadline = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	}
	if o.State == workorder.Unknown {
		o.State = workorder.Draft
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	}
	if o.Version == 0 {
		o.Version = 1
	}

	value, err := kernel.MoneyFromInt(o.Value)
	require.NoError(t, err)

	snapshot := workorder.Snapshot{
		ID:           o.ID,
		BatchID:      kernel.NewUUID(),
		CreatedBy:    o.CreatedBy,
		WorkerID:     o.WorkerID,
		Title:        o.Title,
		Description:  "two coats",
		Value:        value,
		Deadline:     o.Deadline,
		Requirements: []string{"white paint"},
		State:        o.State,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.CreatedAt,
		Version:      o.Version,
	}

	if o.State.IsCompleted() {
		completedAt := o.CompletedAt
		if completedAt.IsZero() {
			completedAt = o.Deadline
		}
		settlement, err := services.NewPenaltyCalculator().Settle(o.Deadline, completedAt, value)
		require.NoError(t, err)

		snapshot.State = settlement.TerminalState()
		snapshot.CompletedAt = &completedAt
		snapshot.CompletionRequestedAt = &completedAt
		snapshot.Settlement = &settlement
		snapshot.UpdatedAt = completedAt
	}

	order, err := workorder.RestoreWorkOrder(snapshot)
	require.NoError(t, err)
	return order
}
