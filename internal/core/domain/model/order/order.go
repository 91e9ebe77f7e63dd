package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoLines is returned when an order would be created from an
	// empty cart snapshot.
	ErrOrderHasNoLines = errors.New("order must contain at least one line item")
)

// Order is the aggregate created from a cart snapshot at submission time.
//
// Invariants:
//   - id, line items, total, creation time, notes and delivery partner are
//     fixed at construction and never change
//   - only the delivery status mutates, through ChangeStatus
//   - line items are copied in and copied out, so no caller can alias the
//     snapshot through a shared slice
type Order struct {
	id        kernel.UUID
	lines     []cart.Line
	total     float64
	createdAt time.Time
	notes     string
	partner   Partner
	status    Status

	isConstructed bool
}

// NewOrder creates an order from a cart snapshot. The lines are copied and the
// total is computed here, once; later cart mutations cannot affect the order.
// The order starts in Pending status.
func NewOrder(
	id kernel.UUID,
	lines []cart.Line,
	notes string,
	partner Partner,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		validateLines(lines),
		partner.Validate(),
	); err != nil {
		return nil, err
	}

	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)

	var total float64
	for _, line := range snapshot {
		total += line.Subtotal()
	}

	return &Order{
		id:            id,
		lines:         snapshot,
		total:         total,
		createdAt:     createdAt,
		notes:         notes,
		partner:       partner,
		status:        Pending,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from the persistent store. The stored
// total is taken as-is, never recomputed; it was fixed at submission time.
func RestoreOrder(
	id kernel.UUID,
	lines []cart.Line,
	total float64,
	createdAt time.Time,
	notes string,
	partner Partner,
	status Status,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		validateLines(lines),
		partner.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)

	return &Order{
		id:            id,
		lines:         snapshot,
		total:         total,
		createdAt:     createdAt,
		notes:         notes,
		partner:       partner,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
// Call it when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Lines returns a copy of the frozen line-item snapshot.
func (o *Order) Lines() []cart.Line {
	lines := make([]cart.Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Total returns the total computed at submission time.
func (o *Order) Total() float64 {
	return o.total
}

// CreatedAt returns the submission timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Notes returns the optional free-text notes captured at submission.
func (o *Order) Notes() string {
	return o.notes
}

// Partner returns the delivery partner assigned at submission time.
func (o *Order) Partner() Partner {
	return o.partner
}

// Status returns the current delivery status.
func (o *Order) Status() Status {
	return o.status
}

// ChangeStatus advances the delivery status.
//
// Terminal statuses reject the change: Cancelled always wins over any
// later-firing scheduled transition, and Delivered orders stay delivered.
// Callers that treat suppressed transitions as no-ops should check the
// current status first or match on errs.ErrValueIsInvalid.
func (o *Order) ChangeStatus(target Status) error {
	newStatus, err := o.status.Transition(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func validateLines(lines []cart.Line) error {
	if len(lines) == 0 {
		return ErrOrderHasNoLines
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("line items", err)
		}
	}
	return nil
}
