package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates the background pieces of the order lifecycle.
// Provides a unified interface to start and stop them together.
type JobManager struct {
	scheduler *TimerTransitionScheduler
	watcher   *StatusWatcherJob
	logger    *slog.Logger
}

// NewJobManager creates a manager over an already wired scheduler and watcher.
// The scheduler is built before the manager because the submission handler
// depends on it.
func NewJobManager(
	scheduler *TimerTransitionScheduler,
	watcher *StatusWatcherJob,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		scheduler: scheduler,
		watcher:   watcher,
		logger:    logger.With("component", "job_manager"),
	}
}

// StartAll starts the polling watcher. The scheduler needs no start: it arms
// timers on demand as orders are submitted.
func (jm *JobManager) StartAll() error {
	if err := jm.watcher.Start(); err != nil {
		return fmt.Errorf("failed to start status watcher job: %w", err)
	}

	return nil
}

// StopAll stops the watcher and cancels every pending scheduled transition.
func (jm *JobManager) StopAll() {
	jm.watcher.Stop()
	jm.scheduler.Stop()
}
