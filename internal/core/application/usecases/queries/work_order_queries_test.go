package queries_test

import (
	"context"
	"testing"
	"time"

	"workorders/internal/adapters/out/postgres/dbtest"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/payment"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WorkOrderQueriesTestSuite struct {
	querySuite
}

func TestWorkOrderQueries(t *testing.T) {
	suite.Run(t, new(WorkOrderQueriesTestSuite))
}

func (s *WorkOrderQueriesTestSuite) TestGet_AdminSeesFullView() {
	ada := s.addWorker("Ada")
	order := s.addOrder(dbtest.Order{
		WorkerID:    ada.ID(),
		State:       workorder.DoneLate,
		CompletedAt: time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC),
	})
	paidAt := time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)
	s.markPaid(order, paidAt)

	query, err := queries.NewGetWorkOrderQuery(s.admin, order.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetWorkOrderQueryHandler(s.db, s.logger).Handle(context.Background(), query)
	s.Require().NoError(err)

	s.True(view.ID.IsEqual(order.ID()))
	s.True(view.WorkerID.IsEqual(ada.ID()))
	s.Equal("Ada", view.WorkerName)
	s.Equal(order.Title(), view.Title)
	s.Equal([]string{"white paint"}, view.Requirements)
	s.Equal(workorder.DoneLate, view.State)
	s.True(view.Deadline.Equal(order.Deadline()))
	s.Require().NotNil(view.CompletedAt)
	s.True(view.CompletedAt.Equal(time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)))
	s.Require().NotNil(view.Settlement)
	s.Equal(3, view.Settlement.DaysLate)
	s.Equal(9, view.Settlement.PenaltyPercentage)
	s.Equal("90000", view.Settlement.PenaltyAmount.String())
	s.Equal("910000", view.Settlement.FinalValue.String())
	s.Equal(payment.Paid, view.PaymentStatus)
	s.Require().NotNil(view.PaymentDate)
	s.True(view.PaymentDate.Equal(paidAt))
	s.Equal(1, view.Version)
}

func (s *WorkOrderQueriesTestSuite) TestGet_CompletedWithoutRecordIsPending() {
	order := s.addOrder(dbtest.Order{State: workorder.DoneOnTime})

	query, err := queries.NewGetWorkOrderQuery(s.admin, order.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetWorkOrderQueryHandler(s.db, s.logger).Handle(context.Background(), query)
	s.Require().NoError(err)

	s.Equal(payment.Pending, view.PaymentStatus)
	s.Nil(view.PaymentDate)
	s.Empty(view.WorkerName, "the worker is not registered")
}

func (s *WorkOrderQueriesTestSuite) TestGet_DraftHasNoPaymentStatus() {
	order := s.addOrder(dbtest.Order{})

	query, err := queries.NewGetWorkOrderQuery(s.admin, order.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetWorkOrderQueryHandler(s.db, s.logger).Handle(context.Background(), query)
	s.Require().NoError(err)

	s.Empty(view.PaymentStatus)
	s.Nil(view.Settlement)
}

func (s *WorkOrderQueriesTestSuite) TestGet_WorkerVisibility() {
	ada := s.addWorker("Ada")
	bob := s.addWorker("Bob")
	order := s.addOrder(dbtest.Order{WorkerID: ada.ID()})
	handler := queries.NewGetWorkOrderQueryHandler(s.db, s.logger)

	own, err := queries.NewGetWorkOrderQuery(ada, order.ID())
	s.Require().NoError(err)
	_, err = handler.Handle(context.Background(), own)
	s.Require().NoError(err)

	foreign, err := queries.NewGetWorkOrderQuery(bob, order.ID())
	s.Require().NoError(err)
	_, err = handler.Handle(context.Background(), foreign)
	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrActorIsUnauthorized)
}

func (s *WorkOrderQueriesTestSuite) TestGet_Unknown() {
	query, err := queries.NewGetWorkOrderQuery(s.admin, kernel.NewUUID())
	s.Require().NoError(err)

	_, err = queries.NewGetWorkOrderQueryHandler(s.db, s.logger).Handle(context.Background(), query)

	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *WorkOrderQueriesTestSuite) TestList_FiltersAndOrder() {
	ada := s.addWorker("Ada")
	bob := s.addWorker("Bob")
	older := s.addOrder(dbtest.Order{WorkerID: ada.ID(), CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)})
	newer := s.addOrder(dbtest.Order{
		WorkerID:  ada.ID(),
		State:     workorder.Active,
		CreatedAt: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC),
	})
	bobs := s.addOrder(dbtest.Order{WorkerID: bob.ID()})
	handler := queries.NewListWorkOrdersQueryHandler(s.db, s.logger)

	all, err := queries.NewListWorkOrdersQuery(s.admin, queries.WorkOrderFilter{})
	s.Require().NoError(err)
	views, err := handler.Handle(context.Background(), all)
	s.Require().NoError(err)
	s.Len(views, 3)

	adaID := ada.ID()
	byWorker, err := queries.NewListWorkOrdersQuery(s.admin, queries.WorkOrderFilter{WorkerID: &adaID})
	s.Require().NoError(err)
	views, err = handler.Handle(context.Background(), byWorker)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].ID.IsEqual(newer.ID()), "newest first")
	s.True(views[1].ID.IsEqual(older.ID()))

	active := workorder.Active
	byState, err := queries.NewListWorkOrdersQuery(s.admin, queries.WorkOrderFilter{State: &active})
	s.Require().NoError(err)
	views, err = handler.Handle(context.Background(), byState)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.True(views[0].ID.IsEqual(newer.ID()))

	// A worker asking for someone else's orders still only gets their own.
	bobID := bob.ID()
	asAda, err := queries.NewListWorkOrdersQuery(ada, queries.WorkOrderFilter{WorkerID: &bobID})
	s.Require().NoError(err)
	views, err = handler.Handle(context.Background(), asAda)
	s.Require().NoError(err)
	s.Len(views, 2)
	for _, v := range views {
		s.False(v.ID.IsEqual(bobs.ID()))
	}
}

func (s *WorkOrderQueriesTestSuite) TestListWorkers_ByName() {
	s.addWorker("Zoe")
	s.addWorker("Ada")

	views, err := queries.NewListWorkersQueryHandler(s.db, s.logger).Handle(context.Background(), queries.NewListWorkersQuery())

	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal("Ada", views[0].Name)
	s.Equal("Zoe", views[1].Name)
}

func TestQueries_NotConstructedViaConstructor(t *testing.T) {
	assert.ErrorIs(t, queries.GetWorkOrderQuery{}.Validate(), queries.ErrGetWorkOrderQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListWorkOrdersQuery{}.Validate(), queries.ErrListWorkOrdersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.ListWorkersQuery{}.Validate(), queries.ErrListWorkersQueryIsNotConstructed)
	assert.ErrorIs(t, queries.PayrollSummaryQuery{}.Validate(), queries.ErrPayrollSummaryQueryIsNotConstructed)
}

func TestNewListWorkOrdersQuery_RejectsUnknownState(t *testing.T) {
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	unknown := workorder.Unknown

	_, err = queries.NewListWorkOrdersQuery(admin, queries.WorkOrderFilter{State: &unknown})

	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}
