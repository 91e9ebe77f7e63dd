package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// GetOrderHistoryQueryHandler serves the current account's order history in
// insertion order, oldest first.
//
// An anonymous session sees an empty history, matching the write side where
// anonymous submissions are no-ops.
type GetOrderHistoryQueryHandler struct {
	session ports.Session
	history ports.HistoryRepository
}

// NewGetOrderHistoryQueryHandler creates a handler for history reads.
func NewGetOrderHistoryQueryHandler(
	session ports.Session,
	history ports.HistoryRepository,
) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{
		session: session,
		history: history,
	}
}

// Handle returns the current account's orders. The result is empty, never
// nil, for anonymous sessions and accounts with no orders.
func (h *GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	accountID, ok := h.session.CurrentAccount()
	if !ok {
		return []*order.Order{}, nil
	}

	return h.history.History(ctx, accountID)
}
