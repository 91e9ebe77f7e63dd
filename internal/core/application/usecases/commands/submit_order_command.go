package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/cart"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand represents a request to turn the current cart contents
// into an order. It carries a snapshot of the cart lines and the optional
// delivery notes captured at checkout.
//
// An empty snapshot is a valid command: submitting an empty cart is a silent
// no-op, decided by the handler rather than rejected here.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(shoppingCart.Lines(), "leave at the door")
//	if err != nil {
//	    return fmt.Errorf("invalid submission: %w", err)
//	}
//
//	submitted, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to submit order: %w", err)
//	}
//	if submitted != nil {
//	    fmt.Printf("Order %s submitted", submitted.ID())
//	}
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	lines []cart.Line
	notes string

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand creates a submission command from a cart snapshot.
// Every line must be valid; the snapshot is copied so later cart mutations
// cannot change the command.
func NewSubmitOrderCommand(lines []cart.Line, notes string) (SubmitOrderCommand, error) {
	submitCommand := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		submitCommand.setLines(lines),
		submitCommand.setNotes(notes),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return submitCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitOrderCommandIsNotConstructed if validation fails.
func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

// Lines returns a copy of the cart snapshot.
func (c SubmitOrderCommand) Lines() []cart.Line {
	lines := make([]cart.Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Notes returns the optional delivery notes.
func (c SubmitOrderCommand) Notes() string {
	return c.notes
}

func (c *SubmitOrderCommand) setLines(lines []cart.Line) error {
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("lines", err)
		}
	}

	snapshot := make([]cart.Line, len(lines))
	copy(snapshot, lines)
	c.lines = snapshot
	return nil
}

func (c *SubmitOrderCommand) setNotes(notes string) error {
	c.notes = notes
	return nil
}
