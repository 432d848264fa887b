package notification_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/workorder"
	"workorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	cases := map[workorder.State]notification.EventKind{
		workorder.PendingApproval:     notification.ApprovalRequested,
		workorder.Active:              notification.Accepted,
		workorder.Rejected:            notification.Rejected,
		workorder.CompletionRequested: notification.CompletionRequested,
		workorder.DoneOnTime:          notification.CompletedOnTime,
		workorder.DoneLate:            notification.CompletedLate,
	}
	for state, want := range cases {
		got, err := notification.KindFor(state)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := notification.KindFor(workorder.Draft)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewNotification(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	admin, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAdmin)
	require.NoError(t, err)
	worker, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)
	value, err := kernel.MoneyFromInt(100)
	require.NoError(t, err)

	order, err := workorder.NewWorkOrder(kernel.NewUUID(), kernel.NewUUID(), admin, worker.ID(),
		workorder.Brief{Title: "Sweep", Deadline: now.Add(time.Hour)}, value, now)
	require.NoError(t, err)

	t.Run("admin action notifies the worker", func(t *testing.T) {
		require.NoError(t, order.SendForApproval(admin, now))

		n, err := notification.NewNotification(kernel.NewUUID(), order, admin, now)

		require.NoError(t, err)
		assert.Equal(t, notification.ApprovalRequested, n.Kind())
		assert.True(t, n.RecipientID().IsEqual(worker.ID()))
		assert.False(t, n.IsSent())
	})

	t.Run("worker action notifies the issuing admin", func(t *testing.T) {
		require.NoError(t, order.RespondToApproval(worker, true, now))

		n, err := notification.NewNotification(kernel.NewUUID(), order, worker, now)

		require.NoError(t, err)
		assert.Equal(t, notification.Accepted, n.Kind())
		assert.True(t, n.RecipientID().IsEqual(admin.ID()))
	})

	t.Run("delivery bookkeeping", func(t *testing.T) {
		n, err := notification.NewNotification(kernel.NewUUID(), order, worker, now)
		require.NoError(t, err)

		n.MarkFailed(errors.New(strings.Repeat("x", 600)))
		assert.Equal(t, 1, n.Attempts())
		assert.Len(t, n.LastError(), 500)
		assert.False(t, n.IsSent())

		n.MarkSent(now)
		assert.Equal(t, 2, n.Attempts())
		assert.Empty(t, n.LastError())
		assert.True(t, n.IsSent())
	})
}
