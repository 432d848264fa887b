package workorder_test

import (
	"testing"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	issuedAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	deadline = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	admin    kernel.Actor
	worker   kernel.Actor
	stranger kernel.Actor
	value    kernel.Money
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	worker, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)
	stranger, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)
	value, err := kernel.MoneyFromInt(1000000)
	require.NoError(t, err)

	return fixture{admin: admin, worker: worker, stranger: stranger, value: value}
}

func (f fixture) brief() workorder.Brief {
	return workorder.Brief{
		Title:        "Paint the east wall",
		Description:  "Two coats",
		Deadline:     deadline,
		Requirements: []string{"primer", "  ", "white paint"},
	}
}

func (f fixture) draft(t *testing.T) *workorder.WorkOrder {
	t.Helper()

	o, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), f.admin, f.worker.ID(), f.brief(), f.value, issuedAt)
	require.NoError(t, err)
	return o
}

// advance drives a fresh order to the given state through the legal path.
func (f fixture) advance(t *testing.T, to workorder.State) *workorder.WorkOrder {
	t.Helper()

	o := f.draft(t)
	now := issuedAt.Add(time.Hour)
	steps := map[workorder.State]func() error{
		workorder.PendingApproval: func() error { return o.SendForApproval(f.admin, now) },
		workorder.Active:          func() error { return o.RespondToApproval(f.worker, true, now) },
		workorder.Rejected:        func() error { return o.RespondToApproval(f.worker, false, now) },
		workorder.CompletionRequested: func() error {
			return o.RequestCompletion(f.worker, now)
		},
		workorder.DoneOnTime: func() error { return o.ApproveCompletion(f.admin, f.onTime(t), now) },
	}
	path := map[workorder.State][]workorder.State{
		workorder.Draft:               {},
		workorder.PendingApproval:     {workorder.PendingApproval},
		workorder.Active:              {workorder.PendingApproval, workorder.Active},
		workorder.Rejected:            {workorder.PendingApproval, workorder.Rejected},
		workorder.CompletionRequested: {workorder.PendingApproval, workorder.Active, workorder.CompletionRequested},
		workorder.DoneOnTime: {
			workorder.PendingApproval, workorder.Active, workorder.CompletionRequested, workorder.DoneOnTime,
		},
	}

	for _, step := range path[to] {
		require.NoError(t, steps[step]())
	}
	require.Equal(t, to, o.State())
	return o
}

func (f fixture) onTime(t *testing.T) workorder.Settlement {
	t.Helper()

	s, err := workorder.NewSettlement(f.value, 0, 0, kernel.ZeroMoney(), f.value)
	require.NoError(t, err)
	return s
}

func (f fixture) late(t *testing.T) workorder.Settlement {
	t.Helper()

	penalty, err := kernel.MoneyFromInt(90000)
	require.NoError(t, err)
	final, err := kernel.MoneyFromInt(910000)
	require.NoError(t, err)
	s, err := workorder.NewSettlement(f.value, 3, 9, penalty, final)
	require.NoError(t, err)
	return s
}

func TestNewWorkOrder(t *testing.T) {
	f := newFixture(t)

	t.Run("should create a draft", func(t *testing.T) {
		o := f.draft(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, workorder.Draft, o.State())
		assert.Equal(t, "Paint the east wall", o.Title())
		assert.Equal(t, []string{"primer", "white paint"}, o.Requirements())
		assert.True(t, o.WorkerID().IsEqual(f.worker.ID()))
		assert.True(t, o.CreatedBy().IsEqual(f.admin.ID()))
		assert.True(t, o.Value().IsEqual(f.value))
		assert.Nil(t, o.CompletedAt())
		assert.Nil(t, o.Settlement())
		assert.Equal(t, issuedAt, o.CreatedAt())
		assert.Equal(t, 0, o.Version())
	})

	t.Run("should reject a worker issuer", func(t *testing.T) {
		o, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), f.worker, f.worker.ID(), f.brief(), f.value, issuedAt)

		require.ErrorIs(t, err, errs.ErrActorIsUnauthorized)
		assert.Nil(t, o)
	})

	t.Run("should collect every invalid field", func(t *testing.T) {
		brief := f.brief()
		brief.Title = "   "
		brief.Deadline = issuedAt.Add(-time.Hour)

		o, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), f.admin, kernel.UUID{}, brief, kernel.ZeroMoney(), issuedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "assigned worker")
		assert.Contains(t, err.Error(), "is not greater than 0")
		assert.Contains(t, err.Error(), "is not in the future")
	})

	t.Run("should reject a deadline equal to now", func(t *testing.T) {
		brief := f.brief()
		brief.Deadline = issuedAt

		_, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), f.admin, f.worker.ID(), brief, f.value, issuedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestWorkOrder_Lifecycle(t *testing.T) {
	f := newFixture(t)

	t.Run("on time path ends in DONE_ON_TIME with the full value", func(t *testing.T) {
		o := f.advance(t, workorder.CompletionRequested)
		require.NotNil(t, o.CompletionRequestedAt())

		approvedAt := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
		require.NoError(t, o.ApproveCompletion(f.admin, f.onTime(t), approvedAt))

		assert.Equal(t, workorder.DoneOnTime, o.State())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, approvedAt, *o.CompletedAt())
		assert.Equal(t, approvedAt, o.UpdatedAt())
		assert.Equal(t, "1000000", o.FinalValue().String())
	})

	t.Run("late path ends in DONE_LATE with the settled value", func(t *testing.T) {
		o := f.advance(t, workorder.CompletionRequested)

		require.NoError(t, o.ApproveCompletion(f.admin, f.late(t), time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)))

		assert.Equal(t, workorder.DoneLate, o.State())
		assert.Equal(t, 3, o.Settlement().DaysLate())
		assert.Equal(t, 9, o.Settlement().PenaltyPercentage())
		assert.Equal(t, "90000", o.Settlement().PenaltyAmount().String())
		assert.Equal(t, "910000", o.FinalValue().String())
	})

	t.Run("rejection is terminal", func(t *testing.T) {
		o := f.advance(t, workorder.Rejected)

		err := o.RequestCompletion(f.worker, issuedAt)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.Equal(t, workorder.Rejected, o.State())
	})

	t.Run("settlement for another value is refused", func(t *testing.T) {
		o := f.advance(t, workorder.CompletionRequested)
		other, err := kernel.MoneyFromInt(5)
		require.NoError(t, err)
		s, err := workorder.NewSettlement(other, 0, 0, kernel.ZeroMoney(), other)
		require.NoError(t, err)

		err = o.ApproveCompletion(f.admin, s, issuedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, workorder.CompletionRequested, o.State())
	})
}

func TestWorkOrder_Authorization(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		from  workorder.State
		apply func(o *workorder.WorkOrder) error
	}{
		{"worker cannot send for approval", workorder.Draft, func(o *workorder.WorkOrder) error {
			return o.SendForApproval(f.worker, issuedAt)
		}},
		{"admin cannot accept", workorder.PendingApproval, func(o *workorder.WorkOrder) error {
			return o.RespondToApproval(f.admin, true, issuedAt)
		}},
		{"other worker cannot reject", workorder.PendingApproval, func(o *workorder.WorkOrder) error {
			return o.RespondToApproval(f.stranger, false, issuedAt)
		}},
		{"other worker cannot request completion", workorder.Active, func(o *workorder.WorkOrder) error {
			return o.RequestCompletion(f.stranger, issuedAt)
		}},
		{"worker cannot approve completion", workorder.CompletionRequested, func(o *workorder.WorkOrder) error {
			return o.ApproveCompletion(f.worker, f.onTime(t), issuedAt)
		}},
		{"worker cannot extend deadline", workorder.Active, func(o *workorder.WorkOrder) error {
			return o.ExtendDeadline(f.worker, deadline.Add(time.Hour), issuedAt)
		}},
		// actor is checked before state
		{"other worker on wrong state is still unauthorized", workorder.Draft, func(o *workorder.WorkOrder) error {
			return o.RequestCompletion(f.stranger, issuedAt)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := f.advance(t, tc.from)
			before := o.UpdatedAt()

			err := tc.apply(o)

			require.ErrorIs(t, err, errs.ErrActorIsUnauthorized)
			assert.Equal(t, tc.from, o.State())
			assert.Equal(t, before, o.UpdatedAt())
		})
	}
}

func TestWorkOrder_InvalidTransitions(t *testing.T) {
	f := newFixture(t)

	t.Run("assignee cannot request completion before accepting", func(t *testing.T) {
		o := f.advance(t, workorder.PendingApproval)

		err := o.RequestCompletion(f.worker, issuedAt)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.Equal(t, workorder.PendingApproval, o.State())
		assert.Nil(t, o.CompletionRequestedAt())
	})

	t.Run("admin cannot approve an active order", func(t *testing.T) {
		o := f.advance(t, workorder.Active)

		err := o.ApproveCompletion(f.admin, f.onTime(t), issuedAt)

		require.ErrorIs(t, err, errs.ErrTransitionIsInvalid)
		assert.Nil(t, o.Settlement())
		assert.Nil(t, o.CompletedAt())
	})

	t.Run("an order cannot be sent twice", func(t *testing.T) {
		o := f.advance(t, workorder.PendingApproval)

		require.ErrorIs(t, o.SendForApproval(f.admin, issuedAt), errs.ErrTransitionIsInvalid)
	})
}

func TestWorkOrder_Edit(t *testing.T) {
	f := newFixture(t)

	t.Run("draft edit applies every change", func(t *testing.T) {
		o := f.draft(t)
		title := "Paint the west wall"
		reqs := []string{"ladder"}
		newWorker := kernel.NewUUID()
		value, err := kernel.MoneyFromInt(42)
		require.NoError(t, err)
		editedAt := issuedAt.Add(time.Minute)

		err = o.Edit(f.admin, workorder.Changes{Title: &title, Requirements: &reqs, WorkerID: &newWorker, Value: &value}, editedAt)

		require.NoError(t, err)
		assert.Equal(t, title, o.Title())
		assert.Equal(t, reqs, o.Requirements())
		assert.True(t, o.WorkerID().IsEqual(newWorker))
		assert.Equal(t, "42", o.Value().String())
		assert.Equal(t, editedAt, o.UpdatedAt())
	})

	t.Run("an invalid change leaves the order untouched", func(t *testing.T) {
		o := f.draft(t)
		title := "New title"
		past := issuedAt.Add(-time.Hour)

		err := o.Edit(f.admin, workorder.Changes{Title: &title, Deadline: &past}, issuedAt)

		require.Error(t, err)
		assert.Equal(t, "Paint the east wall", o.Title())
		assert.Equal(t, deadline, o.Deadline())
	})

	t.Run("editing the title of an active order is refused", func(t *testing.T) {
		o := f.advance(t, workorder.Active)
		title := "Other"

		err := o.Edit(f.admin, workorder.Changes{Title: &title}, issuedAt)

		require.ErrorIs(t, err, errs.ErrStateIsInvalid)
		assert.Equal(t, "Paint the east wall", o.Title())
	})

	t.Run("a deadline-only edit of an active order extends it", func(t *testing.T) {
		o := f.advance(t, workorder.Active)
		later := deadline.Add(48 * time.Hour)

		require.NoError(t, o.Edit(f.admin, workorder.Changes{Deadline: &later}, issuedAt))
		assert.Equal(t, later, o.Deadline())
	})

	t.Run("empty changes are refused", func(t *testing.T) {
		o := f.draft(t)

		require.ErrorIs(t, o.Edit(f.admin, workorder.Changes{}, issuedAt), errs.ErrValueIsRequired)
	})

	t.Run("workers cannot edit", func(t *testing.T) {
		o := f.draft(t)
		title := "Mine now"

		require.ErrorIs(t, o.Edit(f.worker, workorder.Changes{Title: &title}, issuedAt), errs.ErrActorIsUnauthorized)
	})
}

func TestWorkOrder_ExtendDeadline(t *testing.T) {
	f := newFixture(t)

	t.Run("allowed in every non-terminal state", func(t *testing.T) {
		for _, s := range []workorder.State{
			workorder.Draft, workorder.PendingApproval, workorder.Active, workorder.CompletionRequested,
		} {
			o := f.advance(t, s)
			later := deadline.Add(24 * time.Hour)

			require.NoError(t, o.ExtendDeadline(f.admin, later, issuedAt), s.String())
			assert.Equal(t, later, o.Deadline())
			assert.Equal(t, s, o.State())
		}
	})

	t.Run("the new deadline must be strictly later", func(t *testing.T) {
		o := f.advance(t, workorder.Active)

		for _, d := range []time.Time{deadline, deadline.Add(-time.Second)} {
			err := o.ExtendDeadline(f.admin, d, issuedAt)

			require.ErrorIs(t, err, errs.ErrDeadlineIsInvalid)
			assert.Equal(t, deadline, o.Deadline())
		}
	})

	t.Run("terminal orders cannot be extended", func(t *testing.T) {
		for _, s := range []workorder.State{workorder.Rejected, workorder.DoneOnTime} {
			o := f.advance(t, s)

			require.ErrorIs(t, o.ExtendDeadline(f.admin, deadline.Add(time.Hour), issuedAt), errs.ErrStateIsInvalid)
		}
	})
}

func TestWorkOrder_CounterpartOf(t *testing.T) {
	f := newFixture(t)
	o := f.draft(t)

	assert.True(t, o.CounterpartOf(f.admin).IsEqual(f.worker.ID()))
	assert.True(t, o.CounterpartOf(f.worker).IsEqual(f.admin.ID()))
}

func TestRestoreWorkOrder(t *testing.T) {
	f := newFixture(t)
	completedAt := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)
	late := f.late(t)

	snapshot := func() workorder.Snapshot {
		return workorder.Snapshot{
			ID:          kernel.NewUUID(),
			BatchID:     kernel.NewUUID(),
			CreatedBy:   f.admin.ID(),
			WorkerID:    f.worker.ID(),
			Title:       "Restored",
			Value:       f.value,
			Deadline:    deadline,
			State:       workorder.DoneLate,
			CompletedAt: &completedAt,
			Settlement:  &late,
			CreatedAt:   issuedAt,
			UpdatedAt:   completedAt,
			Version:     7,
		}
	}

	t.Run("restores a completed order", func(t *testing.T) {
		o, err := workorder.RestoreWorkOrder(snapshot())

		require.NoError(t, err)
		assert.Equal(t, workorder.DoneLate, o.State())
		assert.Equal(t, 7, o.Version())
		assert.Equal(t, "910000", o.FinalValue().String())
	})

	t.Run("accepts a past deadline and CANCELLED", func(t *testing.T) {
		s := snapshot()
		s.State = workorder.Cancelled
		s.CompletedAt = nil
		s.Settlement = nil

		o, err := workorder.RestoreWorkOrder(s)

		require.NoError(t, err)
		assert.Equal(t, workorder.Cancelled, o.State())
	})

	t.Run("rejects completion fields outside completed states", func(t *testing.T) {
		s := snapshot()
		s.State = workorder.Active

		_, err := workorder.RestoreWorkOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects a settlement that disagrees with the state", func(t *testing.T) {
		s := snapshot()
		s.State = workorder.DoneOnTime

		_, err := workorder.RestoreWorkOrder(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
