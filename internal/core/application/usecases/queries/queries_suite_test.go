package queries_test

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/adapters/out/postgres/dbtest"
	"workorders/internal/adapters/out/postgres/paymentrepo"
	"workorders/internal/adapters/out/postgres/workerrepo"
	"workorders/internal/adapters/out/postgres/workorderrepo"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/core/domain/model/worker"
	"workorders/internal/core/domain/model/workorder"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

// querySuite seeds a fresh sqlite database per test through the repositories.
type querySuite struct {
	suite.Suite
	db     *gorm.DB
	logger *slog.Logger
	admin  kernel.Actor
}

func (s *querySuite) SetupTest() {
	s.db = dbtest.OpenSqlite(s.T())
	s.logger = slog.New(slog.DiscardHandler)

	var err error
	s.admin, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	s.Require().NoError(err)
}

func (s *querySuite) addWorker(name string) kernel.Actor {
	w, err := worker.NewWorker(kernel.NewUUID(), name, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().NoError(workerrepo.NewGormWorkerRepository(s.db, nopTracker{}).Add(context.Background(), w))

	actor, err := kernel.NewActor(w.ID(), kernel.RoleWorker)
	s.Require().NoError(err)
	return actor
}

func (s *querySuite) addOrder(o dbtest.Order) *workorder.WorkOrder {
	if o.CreatedBy == (kernel.UUID{}) {
		o.CreatedBy = s.admin.ID()
	}
	order := o.Build(s.T())
	s.Require().NoError(workorderrepo.NewGormWorkOrderRepository(s.db, nopTracker{}).Add(context.Background(), order))
	return order
}

func (s *querySuite) markPaid(order *workorder.WorkOrder, at time.Time) {
	record, err := payment.NewPaymentRecord(order, at)
	s.Require().NoError(err)
	record.MarkPaid(at)
	s.Require().NoError(paymentrepo.NewGormPaymentRepository(s.db, nopTracker{}).Add(context.Background(), record))
}
