// Package historyrepo persists the account-partitioned order history as one
// JSON blob in a key-value store. It owns the mapping between order
// aggregates and their stored representation, including the one-way
// migration that backfills fields older records are missing.
package historyrepo

import (
	"time"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// historyDTO is the persisted shape of the whole mapping: account identifier
// to chronologically ordered orders.
type historyDTO map[string][]OrderDTO

// OrderDTO is the stored representation of one order.
type OrderDTO struct {
	OrderID         string        `json:"orderId"`
	LineItems       []LineItemDTO `json:"lineItems"`
	Total           float64       `json:"total"`
	CreatedAt       string        `json:"createdAt"`
	DeliveryStatus  string        `json:"deliveryStatus"`
	DeliveryPartner PartnerDTO    `json:"deliveryPartner"`
	Notes           string        `json:"notes"`
}

// LineItemDTO is the stored representation of one order line.
type LineItemDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
}

// PartnerDTO is the stored representation of a delivery partner.
type PartnerDTO struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// migrate backfills fields that older persisted records are missing. It is
// one-way and idempotent: applying it to an already-migrated record changes
// nothing.
//
// Defaults: a blank orderId gets a fresh UUID; a legacy non-UUID id maps to
// the same derived UUID on every load; a blank or unknown status becomes
// Pending; a missing partner becomes the "Not Assigned" sentinel; notes
// default to empty via the zero value.
func migrate(dto OrderDTO) OrderDTO {
	switch {
	case dto.OrderID == "":
		dto.OrderID = kernel.NewUUID().String()
	default:
		if _, err := kernel.UUIDFromString(dto.OrderID); err != nil {
			dto.OrderID = kernel.DeriveUUIDFromString(dto.OrderID).String()
		}
	}

	if _, err := order.StatusFromString(dto.DeliveryStatus); err != nil {
		dto.DeliveryStatus = order.Pending.String()
	}

	if dto.DeliveryPartner.Name == "" {
		notAssigned := order.NotAssignedPartner()
		dto.DeliveryPartner = PartnerDTO{
			Name:    notAssigned.Name(),
			Contact: notAssigned.Contact(),
		}
	}

	return dto
}

// fromDomain converts an order aggregate to its stored representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	lines := aggregate.Lines()
	items := make([]LineItemDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, LineItemDTO{
			ProductID: line.ProductID(),
			Name:      line.Name(),
			UnitPrice: line.UnitPrice(),
			Quantity:  line.Quantity(),
		})
	}

	return OrderDTO{
		OrderID:   aggregate.ID().String(),
		LineItems: items,
		Total:     aggregate.Total(),
		CreatedAt: aggregate.CreatedAt().UTC().Format(time.RFC3339Nano),
		DeliveryStatus: aggregate.Status().String(),
		DeliveryPartner: PartnerDTO{
			Name:    aggregate.Partner().Name(),
			Contact: aggregate.Partner().Contact(),
		},
		Notes: aggregate.Notes(),
	}
}

// toDomain reconstructs an order aggregate from a migrated DTO.
// Callers must run migrate first; toDomain parses strictly.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.DeliveryStatus)
	if err != nil {
		return nil, err
	}

	partner, err := order.NewPartner(dto.DeliveryPartner.Name, dto.DeliveryPartner.Contact)
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dto.LineItems))
	for _, item := range dto.LineItems {
		line, lineErr := cart.RestoreLine(item.ProductID, item.Name, item.UnitPrice, item.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	// Stored timestamps are RFC 3339; anything unparseable degrades to the
	// zero time instead of failing the whole load.
	createdAt, timeErr := time.Parse(time.RFC3339Nano, dto.CreatedAt)
	if timeErr != nil {
		createdAt = time.Time{}
	}

	return order.RestoreOrder(id, lines, dto.Total, createdAt, dto.Notes, partner, status)
}
