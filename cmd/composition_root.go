package cmd

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"orderflow/internal/adapters/out/historyrepo"
	"orderflow/internal/adapters/out/postgres/kvstore"
	appsession "orderflow/internal/core/application/session"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// CompositionRoot wires the application graph: storage, session, the use case
// handlers and the background jobs. Stateful pieces (session, repository,
// scheduler, the submission handler with its random source) are built once
// and shared; stateless handlers are created per call.
type CompositionRoot struct {
	config  Config
	logger  *slog.Logger
	session *appsession.Session
	history *historyrepo.KVHistoryRepository
	metrics *metrics.DeliveryMetrics

	roster  services.PartnerRoster
	planner services.ProgressionPlanner

	scheduler     *jobs.TimerTransitionScheduler
	submitHandler *commands.SubmitOrderCommandHandler
}

// NewCompositionRoot builds the graph over an open database connection.
// Loading the persisted history happens here, so construction fails when the
// storage is unreachable.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	store := kvstore.NewGormKeyValueStore(gormDB)

	history, err := historyrepo.NewKVHistoryRepository(ctx, store, config.HistoryStorageKey, logger)
	if err != nil {
		return nil, err
	}

	planner, err := services.NewProgressionPlanner(config.Timing())
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		config:  config,
		logger:  logger,
		session: appsession.NewSession(),
		history: history,
		metrics: metrics.NewDeliveryMetrics(prometheus.NewRegistry()),
		roster:  services.DefaultPartnerRoster(),
		planner: planner,
	}

	updateHandler := commands.NewUpdateDeliveryStatusCommandHandler(history, root.metrics, logger)
	root.scheduler = jobs.NewTimerTransitionScheduler(updateHandler, logger)

	root.submitHandler = commands.NewSubmitOrderCommandHandler(
		root.session,
		history,
		root.roster,
		planner,
		root.scheduler,
		root.metrics,
		logger,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	return root, nil
}

// Session returns the shared current-account holder.
func (c *CompositionRoot) Session() *appsession.Session {
	return c.session
}

// CreateSubmitOrderCommandHandler returns the shared submission handler.
func (c *CompositionRoot) CreateSubmitOrderCommandHandler() *commands.SubmitOrderCommandHandler {
	return c.submitHandler
}

// CreateUpdateDeliveryStatusCommandHandler creates a handler for direct
// status updates, sharing the repository and metrics of the scheduled ones.
func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.history, c.metrics, c.logger)
}

// CreateGetOrderHistoryQueryHandler creates a handler for history reads.
func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.session, c.history)
}

// CreateGetLatestOrderQueryHandler creates a handler for latest-order reads.
func (c *CompositionRoot) CreateGetLatestOrderQueryHandler() queries.GetLatestOrderQueryHandler {
	return queries.NewGetLatestOrderQueryHandler(c.session, c.history)
}

// CreateJobManager wires the background jobs. The onChange callback receives
// every observed status change of the current account's latest order.
func (c *CompositionRoot) CreateJobManager(onChange func(*order.Order)) *jobs.JobManager {
	watcher := jobs.NewStatusWatcherJob(
		c.CreateGetLatestOrderQueryHandler(),
		c.config.PollInterval,
		onChange,
		c.logger,
	)

	return jobs.NewJobManager(c.scheduler, watcher, c.logger)
}
