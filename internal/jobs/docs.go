// Package jobs runs the scheduled background work of the service on
// github.com/robfig/cron/v3.
//
// NotificationRelayJob drains the notification outbox: every tick it asks the
// relay command to publish pending rows. Failed deliveries stay pending and are
// retried on the next tick, so delivery is at least once.
//
//	jobManager := jobs.NewJobManager(relayHandler, jobs.DefaultRelaySpec, 100, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
