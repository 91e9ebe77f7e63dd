package historyrepo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// KVHistoryRepository implements ports.HistoryRepository on top of a
// key-value store holding the whole mapping as one JSON blob.
//
// The blob is deserialized once at construction; reads are served from
// memory and every mutation re-serializes and rewrites the full mapping.
// Whole-blob replacement is acceptable at this scale but means concurrent
// writers through separate repository instances would race; within one
// instance a single mutex serializes all access.
type KVHistoryRepository struct {
	store      ports.KeyValueStore
	storageKey string
	logger     *slog.Logger

	mu      sync.Mutex
	history map[account.ID][]*order.Order
}

// NewKVHistoryRepository creates the repository and loads the persisted
// mapping. An absent or malformed blob yields an empty mapping rather than
// an error; only storage access failures propagate.
func NewKVHistoryRepository(
	ctx context.Context,
	store ports.KeyValueStore,
	storageKey string,
	logger *slog.Logger,
) (*KVHistoryRepository, error) {
	repo := &KVHistoryRepository{
		store:      store,
		storageKey: storageKey,
		logger:     logger.With("component", "history_repository"),
		history:    make(map[account.ID][]*order.Order),
	}

	if err := repo.load(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

// load deserializes the durable blob, applying the migration defaults to
// every record. Records too corrupt to reconstruct are dropped with a log
// line; a load never fails because of bad data.
func (r *KVHistoryRepository) load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, r.storageKey)
	if err != nil {
		if errors.Is(err, ports.ErrKeyNotFound) {
			return nil
		}
		return err
	}

	var dto historyDTO
	if err = json.Unmarshal(raw, &dto); err != nil {
		r.logger.WarnContext(ctx, "Discarding malformed order history", "error", err)
		return nil
	}

	for accountID, orderDTOs := range dto {
		orders := make([]*order.Order, 0, len(orderDTOs))
		for _, orderDTO := range orderDTOs {
			aggregate, restoreErr := toDomain(migrate(orderDTO))
			if restoreErr != nil {
				r.logger.WarnContext(ctx, "Dropping unrestorable order record",
					"account", accountID, "orderId", orderDTO.OrderID, "error", restoreErr)
				continue
			}
			orders = append(orders, aggregate)
		}
		r.history[account.ID(accountID)] = orders
	}

	return nil
}

// save serializes the full mapping and replaces the stored blob.
// Callers must hold r.mu.
func (r *KVHistoryRepository) save(ctx context.Context) error {
	dto := make(historyDTO, len(r.history))
	for accountID, orders := range r.history {
		orderDTOs := make([]OrderDTO, 0, len(orders))
		for _, aggregate := range orders {
			orderDTOs = append(orderDTOs, fromDomain(aggregate))
		}
		dto[accountID.String()] = orderDTOs
	}

	raw, err := json.Marshal(dto)
	if err != nil {
		return err
	}

	return r.store.Put(ctx, r.storageKey, raw)
}

// Append adds an order to the account's history and persists the mapping.
// The append is rolled back in memory when the write fails.
func (r *KVHistoryRepository) Append(ctx context.Context, accountID account.ID, aggregate *order.Order) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// Store a copy so the caller's aggregate never aliases repository state.
	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.history[accountID] = append(r.history[accountID], clone)

	if err := r.save(ctx); err != nil {
		r.history[accountID] = r.history[accountID][:len(r.history[accountID])-1]
		return err
	}

	return nil
}

// UpdateStatus rewrites the matching order's status in place and persists the
// mapping. Returns false without error when the order is absent from the
// account's partition or its current status refuses the transition (terminal
// status, "Cancelled wins"). The status is reverted when the write fails.
func (r *KVHistoryRepository) UpdateStatus(
	ctx context.Context,
	accountID account.ID,
	orderID kernel.UUID,
	target order.Status,
) (bool, error) {
	if err := accountID.Validate(); err != nil {
		return false, err
	}
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var match *order.Order
	for _, aggregate := range r.history[accountID] {
		if aggregate.ID().IsEqual(orderID) {
			match = aggregate
			break
		}
	}
	if match == nil {
		return false, nil
	}

	previous := match.Status()
	if err := match.ChangeStatus(target); err != nil {
		return false, nil
	}

	if err := r.save(ctx); err != nil {
		// Restore the pre-transition status so memory and storage agree.
		restored, restoreErr := order.RestoreOrder(
			match.ID(), match.Lines(), match.Total(), match.CreatedAt(),
			match.Notes(), match.Partner(), previous,
		)
		if restoreErr == nil {
			r.replace(accountID, restored)
		}
		return false, err
	}

	return true, nil
}

// History returns copies of the account's orders in insertion order.
// The result is empty, never nil, for unknown accounts.
func (r *KVHistoryRepository) History(_ context.Context, accountID account.ID) ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]*order.Order, 0, len(r.history[accountID]))
	for _, aggregate := range r.history[accountID] {
		clone, err := cloneOrder(aggregate)
		if err != nil {
			return nil, err
		}
		orders = append(orders, clone)
	}

	return orders, nil
}

// Latest returns a copy of the account's most recent order.
func (r *KVHistoryRepository) Latest(_ context.Context, accountID account.ID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := r.history[accountID]
	if len(orders) == 0 {
		return nil, errs.NewObjectNotFoundError("latest order", accountID.String())
	}

	return cloneOrder(orders[len(orders)-1])
}

// replace swaps the stored aggregate with the same id. Callers hold r.mu.
func (r *KVHistoryRepository) replace(accountID account.ID, aggregate *order.Order) {
	for i, existing := range r.history[accountID] {
		if existing.ID().IsEqual(aggregate.ID()) {
			r.history[accountID][i] = aggregate
			return
		}
	}
}

// cloneOrder copies an aggregate so readers never alias the repository's
// mutable state.
func cloneOrder(aggregate *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		aggregate.ID(), aggregate.Lines(), aggregate.Total(), aggregate.CreatedAt(),
		aggregate.Notes(), aggregate.Partner(), aggregate.Status(),
	)
}
