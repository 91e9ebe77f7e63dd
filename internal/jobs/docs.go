// Package jobs provides the background machinery of the order lifecycle.
//
// Two pieces run outside request flow:
//
//  1. TimerTransitionScheduler - arms one-shot timers for the delayed status
//     transitions drawn at submission time
//  2. StatusWatcherJob - polls the current account's latest order on a fixed
//     interval and notifies observers of status changes
//
// # Usage
//
// The scheduler is created first because the submission handler needs it;
// the watcher and the manager come afterwards:
//
//	scheduler := jobs.NewTimerTransitionScheduler(updateHandler, logger)
//	watcher := jobs.NewStatusWatcherJob(latestHandler, interval, onChange, logger)
//	jobManager := jobs.NewJobManager(scheduler, watcher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Timer firings that find their order already terminal are suppressed by the
// status handler, not treated as failures. The watcher logs storage errors
// and keeps polling; an account without orders is silently skipped.
package jobs
