package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"workorders/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRelaySpec runs the relay every five seconds (seconds field enabled).
const DefaultRelaySpec = "*/5 * * * * *"

// RelayPassTimeout bounds one relay pass. Sends still pending when it expires
// fail and are retried on a later pass.
const RelayPassTimeout = 2 * time.Minute

type relayHandler interface {
	Handle(ctx context.Context, command commands.RelayNotificationsCommand) (commands.RelayResult, error)
}

// NotificationRelayJob periodically publishes pending outbox notifications.
// Runs never overlap: a tick that finds the previous run still busy is skipped.
type NotificationRelayJob struct {
	handler   relayHandler
	spec      string
	batchSize int
	cron      *cron.Cron
	running   atomic.Bool
	logger    *slog.Logger
}

func NewNotificationRelayJob(handler relayHandler, spec string, batchSize int, logger *slog.Logger) *NotificationRelayJob {
	if spec == "" {
		spec = DefaultRelaySpec
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &NotificationRelayJob{
		handler:   handler,
		spec:      spec,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "notification_relay_job"),
	}
}

func (j *NotificationRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification relay job started", "spec", j.spec)
	return nil
}

// Run performs one relay pass.
func (j *NotificationRelayJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		return
	}
	defer j.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), RelayPassTimeout)
	defer cancel()

	cmd, err := commands.NewRelayNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Notification relay job failed", "error", err)
		return
	}
	if result.Sent > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Notifications relayed", "sent", result.Sent, "failed", result.Failed)
	}
}

// Stop waits for a running pass to finish.
func (j *NotificationRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification relay job stopped")
}
