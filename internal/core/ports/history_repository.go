package ports

import (
	"context"

	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// HistoryRepository is the single mutation boundary around the persisted
// order-history mapping (account -> chronological orders).
//
// Implementations load the durable representation once at construction,
// serve reads from memory, and write the whole mapping back on every
// mutation. All access is serialized internally, so the repository is safe
// for use from timer callbacks and the polling job concurrently.
type HistoryRepository interface {
	// Append adds an order to the end of the account's history and persists
	// the mapping.
	Append(ctx context.Context, accountID account.ID, aggregate *order.Order) error

	// UpdateStatus rewrites the status of the matching order in place and
	// persists the mapping. It returns false without error when the order
	// does not exist in the account's partition or its current status
	// refuses the transition (terminal status, "Cancelled wins"). An error
	// is returned only for storage failures.
	UpdateStatus(ctx context.Context, accountID account.ID, orderID kernel.UUID, target order.Status) (bool, error)

	// History returns the account's orders in insertion (chronological)
	// order. The slice is empty, never nil, when the account has no orders.
	History(ctx context.Context, accountID account.ID) ([]*order.Order, error)

	// Latest returns the account's most recent order, or an
	// errs.ObjectNotFoundError when the history is empty.
	Latest(ctx context.Context, accountID account.ID) (*order.Order, error)
}
