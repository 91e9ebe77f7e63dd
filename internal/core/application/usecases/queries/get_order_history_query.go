package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery represents a request for the current account's full
// order history. The query carries no parameters: the account comes from the
// session at handling time.
type GetOrderHistoryQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrderHistoryQuery creates a query for the current account's history.
func NewGetOrderHistoryQuery() GetOrderHistoryQuery {
	return GetOrderHistoryQuery{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}
