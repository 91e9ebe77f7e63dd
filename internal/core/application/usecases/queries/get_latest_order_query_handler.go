package queries

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// GetLatestOrderQueryHandler serves the current account's most recent order.
type GetLatestOrderQueryHandler struct {
	session ports.Session
	history ports.HistoryRepository
}

// NewGetLatestOrderQueryHandler creates a handler for latest-order reads.
func NewGetLatestOrderQueryHandler(
	session ports.Session,
	history ports.HistoryRepository,
) GetLatestOrderQueryHandler {
	return GetLatestOrderQueryHandler{
		session: session,
		history: history,
	}
}

// Handle returns the current account's most recent order. Anonymous sessions
// and accounts with no orders get errs.ErrObjectNotFound.
func (h *GetLatestOrderQueryHandler) Handle(ctx context.Context, query GetLatestOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	accountID, ok := h.session.CurrentAccount()
	if !ok {
		return nil, errs.NewObjectNotFoundError("latest order", "anonymous session")
	}

	return h.history.Latest(ctx, accountID)
}
