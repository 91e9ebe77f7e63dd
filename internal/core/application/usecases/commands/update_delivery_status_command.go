package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrUpdateDeliveryStatusCommandIsNotConstructed = errors.New(
	"UpdateDeliveryStatusCommand must be created via NewUpdateDeliveryStatusCommand constructor",
)

// UpdateDeliveryStatusCommand represents one scheduled status transition
// arriving at its firing time: move this account's order to the target status.
//
// Example:
//
//	cmd, err := NewUpdateDeliveryStatusCommand(accountID, orderID, order.OutForDelivery)
//	if err != nil {
//	    return fmt.Errorf("invalid transition request: %w", err)
//	}
//
//	applied, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to update status: %w", err)
//	}
//	if !applied {
//	    // The order is gone or already terminal; the firing was suppressed.
//	}
type UpdateDeliveryStatusCommand struct { //nolint:recvcheck //using for validation
	accountID account.ID
	orderID   kernel.UUID
	target    order.Status

	guard guard.ConstructorGuard
}

// NewUpdateDeliveryStatusCommand creates a command to advance an order's
// delivery status. Validates the account, the order identifier and the target
// status.
func NewUpdateDeliveryStatusCommand(
	accountID account.ID,
	orderID kernel.UUID,
	target order.Status,
) (UpdateDeliveryStatusCommand, error) {
	updateCommand := UpdateDeliveryStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		updateCommand.setAccountID(accountID),
		updateCommand.setOrderID(orderID),
		updateCommand.setTarget(target),
	); err != nil {
		return UpdateDeliveryStatusCommand{}, err
	}

	return updateCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateDeliveryStatusCommandIsNotConstructed if validation fails.
func (c UpdateDeliveryStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDeliveryStatusCommandIsNotConstructed)
}

// AccountID returns the account whose history partition holds the order.
func (c UpdateDeliveryStatusCommand) AccountID() account.ID {
	return c.accountID
}

// OrderID returns the unique identifier of the order to advance.
func (c UpdateDeliveryStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the delivery status to transition to.
func (c UpdateDeliveryStatusCommand) Target() order.Status {
	return c.target
}

func (c *UpdateDeliveryStatusCommand) setAccountID(accountID account.ID) error {
	if err := accountID.Validate(); err != nil {
		return err
	}

	c.accountID = accountID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateDeliveryStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
