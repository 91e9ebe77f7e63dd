package commands

import (
	"context"
	"log/slog"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/metrics"
)

// UpdateDeliveryStatusCommandHandler applies a scheduled status transition to
// a persisted order.
//
// A firing that finds the order absent or already terminal is suppressed, not
// failed: the repository reports it with a false applied flag and the handler
// only counts and logs it. This is how "Cancelled wins" reaches timers that
// were armed before the cancellation.
type UpdateDeliveryStatusCommandHandler struct {
	history ports.HistoryRepository
	metrics *metrics.DeliveryMetrics
	logger  *slog.Logger
}

// NewUpdateDeliveryStatusCommandHandler creates a handler for status updates.
func NewUpdateDeliveryStatusCommandHandler(
	history ports.HistoryRepository,
	deliveryMetrics *metrics.DeliveryMetrics,
	logger *slog.Logger,
) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		history: history,
		metrics: deliveryMetrics,
		logger:  logger.With("component", "update_status_handler"),
	}
}

// Handle processes the transition command. Returns whether the transition was
// applied; storage failures are the only error path.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	applied, err := h.history.UpdateStatus(ctx, cmd.AccountID(), cmd.OrderID(), cmd.Target())
	if err != nil {
		return false, err
	}

	if !applied {
		h.metrics.SuppressedTransitions.Inc()
		h.logger.DebugContext(ctx, "Suppressed status transition",
			"account", cmd.AccountID(), "orderId", cmd.OrderID(), "target", cmd.Target())
		return false, nil
	}

	h.metrics.StatusTransitions.WithLabelValues(cmd.Target().String()).Inc()
	h.logger.InfoContext(ctx, "Delivery status updated",
		"account", cmd.AccountID(), "orderId", cmd.OrderID(), "status", cmd.Target())

	return true, nil
}
