package commands

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/metrics"
)

// SubmitOrderCommandHandler handles the business logic for order submission.
// It snapshots the cart into an order, assigns a random delivery partner,
// persists the order in the current account's history and arms the delayed
// status progression.
//
// Submission is a silent no-op in two cases: the session is anonymous, or the
// cart snapshot is empty. Both return a nil order and no error.
type SubmitOrderCommandHandler struct {
	session   ports.Session
	history   ports.HistoryRepository
	roster    services.PartnerRoster
	planner   services.ProgressionPlanner
	scheduler TransitionScheduler
	metrics   *metrics.DeliveryMetrics
	logger    *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSubmitOrderCommandHandler creates a handler for order submission.
// The rng is the single source of randomness for partner assignment and the
// outcome draw; inject a seeded one for deterministic tests.
func NewSubmitOrderCommandHandler(
	session ports.Session,
	history ports.HistoryRepository,
	roster services.PartnerRoster,
	planner services.ProgressionPlanner,
	scheduler TransitionScheduler,
	deliveryMetrics *metrics.DeliveryMetrics,
	logger *slog.Logger,
	rng *rand.Rand,
) *SubmitOrderCommandHandler {
	return &SubmitOrderCommandHandler{
		session:   session,
		history:   history,
		roster:    roster,
		planner:   planner,
		scheduler: scheduler,
		metrics:   deliveryMetrics,
		logger:    logger.With("component", "submit_order_handler"),
		rng:       rng,
	}
}

// Handle processes the submission command.
//
// The returned order is the persisted aggregate in Pending status, or nil when
// the submission was a no-op. The progression plan is drawn here, exactly
// once, and handed to the scheduler; its timers fire independently of the
// caller.
func (h *SubmitOrderCommandHandler) Handle(ctx context.Context, cmd SubmitOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	accountID, ok := h.session.CurrentAccount()
	if !ok {
		h.logger.DebugContext(ctx, "Ignoring submission from anonymous session")
		return nil, nil
	}

	lines := cmd.Lines()
	if len(lines) == 0 {
		h.logger.DebugContext(ctx, "Ignoring submission of an empty cart", "account", accountID)
		return nil, nil
	}

	partner, plan := h.draw()

	submitted, err := order.NewOrder(kernel.NewUUID(), lines, cmd.Notes(), partner, time.Now())
	if err != nil {
		return nil, err
	}

	if err = h.history.Append(ctx, accountID, submitted); err != nil {
		return nil, err
	}

	h.metrics.OrdersSubmitted.Inc()
	h.scheduler.Schedule(accountID, submitted.ID(), plan)

	h.logger.InfoContext(ctx, "Order submitted",
		"account", accountID,
		"orderId", submitted.ID(),
		"total", submitted.Total(),
		"partner", partner.Name(),
		"outcome", plan.Outcome(),
	)

	return submitted, nil
}

// draw serializes rng access: math/rand sources are not safe for concurrent
// use by multiple goroutines.
func (h *SubmitOrderCommandHandler) draw() (order.Partner, services.Plan) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.roster.Pick(h.rng), h.planner.Plan(h.rng)
}
