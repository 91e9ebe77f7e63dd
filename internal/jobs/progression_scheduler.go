package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

// TimerTransitionScheduler implements commands.TransitionScheduler with
// one-shot timers. Every step of a plan becomes its own timer, armed with the
// step's delay measured from the moment of scheduling.
//
// The scheduler never decides whether a transition still applies; that check
// happens in the status handler when the timer fires. Stopping the scheduler
// cancels all pending timers, so a shutdown cannot leave stray firings behind.
type TimerTransitionScheduler struct {
	handler commands.UpdateDeliveryStatusCommandHandler
	logger  *slog.Logger

	mu      sync.Mutex
	stopped bool
	pending map[*time.Timer]struct{}
}

// NewTimerTransitionScheduler creates a scheduler that executes fired steps
// through the given status handler.
func NewTimerTransitionScheduler(
	handler commands.UpdateDeliveryStatusCommandHandler,
	logger *slog.Logger,
) *TimerTransitionScheduler {
	return &TimerTransitionScheduler{
		handler: handler,
		logger:  logger.With("component", "transition_scheduler"),
		pending: make(map[*time.Timer]struct{}),
	}
}

// Schedule arms one timer per plan step. Scheduling on a stopped scheduler
// does nothing.
func (s *TimerTransitionScheduler) Schedule(
	accountID account.ID,
	orderID kernel.UUID,
	plan services.Plan,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	for _, step := range plan.Steps() {
		s.arm(accountID, orderID, step)
	}
}

// arm creates one timer. Callers hold s.mu.
func (s *TimerTransitionScheduler) arm(accountID account.ID, orderID kernel.UUID, step services.Step) {
	var timer *time.Timer
	timer = time.AfterFunc(step.Delay, func() {
		s.mu.Lock()
		delete(s.pending, timer)
		s.mu.Unlock()

		s.fire(accountID, orderID, step.Target)
	})
	s.pending[timer] = struct{}{}
}

// fire executes one scheduled transition through the status handler.
func (s *TimerTransitionScheduler) fire(accountID account.ID, orderID kernel.UUID, target order.Status) {
	ctx := context.Background()

	cmd, err := commands.NewUpdateDeliveryStatusCommand(accountID, orderID, target)
	if err != nil {
		s.logger.ErrorContext(ctx, "Dropping malformed scheduled transition",
			"account", accountID, "orderId", orderID, "target", target, "error", err)
		return
	}

	if _, err = s.handler.Handle(ctx, cmd); err != nil {
		s.logger.ErrorContext(ctx, "Scheduled transition failed",
			"account", accountID, "orderId", orderID, "target", target, "error", err)
	}
}

// Stop cancels all pending timers. Firings already in flight complete; no new
// ones start.
func (s *TimerTransitionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for timer := range s.pending {
		timer.Stop()
		delete(s.pending, timer)
	}

	s.logger.Info("Transition scheduler stopped")
}
