package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the background jobs of the service.
type JobManager struct {
	notificationRelayJob *NotificationRelayJob
}

func NewJobManager(relay relayHandler, relaySpec string, relayBatchSize int, logger *slog.Logger) *JobManager {
	return &JobManager{
		notificationRelayJob: NewNotificationRelayJob(relay, relaySpec, relayBatchSize, logger),
	}
}

// StartAll returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification relay job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.notificationRelayJob.Stop()
}
