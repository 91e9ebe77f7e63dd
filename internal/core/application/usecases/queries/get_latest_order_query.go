package queries

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrGetLatestOrderQueryIsNotConstructed = errors.New(
	"GetLatestOrderQuery must be created via NewGetLatestOrderQuery constructor",
)

// GetLatestOrderQuery represents a request for the current account's most
// recently submitted order. It backs the tracking view that polls an order
// while its delivery progresses.
type GetLatestOrderQuery struct {
	guard guard.ConstructorGuard
}

// NewGetLatestOrderQuery creates a query for the current account's latest order.
func NewGetLatestOrderQuery() GetLatestOrderQuery {
	return GetLatestOrderQuery{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q GetLatestOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetLatestOrderQueryIsNotConstructed)
}
