package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultPollInterval is the stock polling cadence of the tracking view.
const DefaultPollInterval = 2 * time.Second

// StatusWatcherJob polls the current account's latest order on a fixed
// interval and invokes a callback whenever the observed status changes.
//
// The watcher is the read-side counterpart of the scheduled transitions: it
// never mutates anything, it only observes persisted state. Once the watched
// order reaches a terminal status the job stops itself; a stalled order keeps
// being polled, which mirrors a tracking view that never resolves.
type StatusWatcherJob struct {
	handler  queries.GetLatestOrderQueryHandler
	onChange func(*order.Order)
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	mu         sync.Mutex
	lastID     kernel.UUID
	lastStatus order.Status
}

// NewStatusWatcherJob creates a watcher that polls through the given query
// handler. A non-positive interval falls back to DefaultPollInterval.
func NewStatusWatcherJob(
	handler queries.GetLatestOrderQueryHandler,
	interval time.Duration,
	onChange func(*order.Order),
	logger *slog.Logger,
) *StatusWatcherJob {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &StatusWatcherJob{
		handler:  handler,
		onChange: onChange,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_watcher_job"),
	}
}

// Start begins polling on the configured interval.
func (j *StatusWatcherJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.poll(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status watcher job started", "interval", j.interval)
	return nil
}

// poll performs one observation. A missing latest order is expected for
// anonymous sessions and fresh accounts; storage errors are logged and the
// next tick retries.
func (j *StatusWatcherJob) poll(ctx context.Context) {
	latest, err := j.handler.Handle(ctx, queries.NewGetLatestOrderQuery())
	if err != nil {
		if !errors.Is(err, errs.ErrObjectNotFound) {
			j.logger.ErrorContext(ctx, "Status watcher poll failed", "error", err)
		}
		return
	}

	j.mu.Lock()
	sameOrder := j.lastID.IsEqual(latest.ID())
	changed := !sameOrder || j.lastStatus != latest.Status()
	j.lastID = latest.ID()
	j.lastStatus = latest.Status()
	j.mu.Unlock()

	if !changed {
		return
	}

	j.logger.InfoContext(ctx, "Observed status change",
		"orderId", latest.ID(), "status", latest.Status())

	if j.onChange != nil {
		j.onChange(latest)
	}

	if latest.Status().IsTerminal() {
		j.logger.InfoContext(ctx, "Watched order reached a terminal status, stopping",
			"orderId", latest.ID(), "status", latest.Status())
		j.cron.Stop()
	}
}

// Stop stops the polling job.
func (j *StatusWatcherJob) Stop() {
	j.cron.Stop()
	j.logger.Info("Status watcher job stopped")
}
