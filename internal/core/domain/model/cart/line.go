package cart

import (
	"errors"
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Line represents one cart position: a product reference plus a quantity.
// It is a value object; quantity changes go through the Cart aggregate so the
// "no negative stored quantity" invariant holds in one place.
type Line struct {
	productID string
	name      string
	unitPrice float64
	quantity  int
}

// NewLine creates a cart line for a single unit of the given product.
// Repeat adds of the same product are merged by Cart.Add, so new lines
// always start with quantity 1.
func NewLine(productID, name string, unitPrice float64) (Line, error) {
	return RestoreLine(productID, name, unitPrice, 1)
}

// RestoreLine reconstructs a line with an explicit quantity. It is used when
// rebuilding order snapshots from the persistent store.
func RestoreLine(productID, name string, unitPrice float64, quantity int) (Line, error) {
	line := Line{}

	if err := errors.Join(
		line.setProductID(productID),
		line.setName(name),
		line.setUnitPrice(unitPrice),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	return line, nil
}

// ProductID returns the product reference that keys this line within a cart.
func (l Line) ProductID() string {
	return l.productID
}

// Name returns the display name captured from the product reference.
func (l Line) Name() string {
	return l.name
}

// UnitPrice returns the price of a single unit.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// Quantity returns the number of units, always at least 1 for a stored line.
func (l Line) Quantity() int {
	return l.quantity
}

// Subtotal returns unitPrice multiplied by quantity.
func (l Line) Subtotal() float64 {
	return l.unitPrice * float64(l.quantity)
}

// Validate checks that the line carries a product reference and positive quantity.
// A zero-value Line fails validation, so lines must come from NewLine or RestoreLine.
func (l Line) Validate() error {
	if l.productID == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	if l.quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", l.quantity))
	}
	return nil
}

func (l *Line) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("product id")
	}
	l.productID = productID
	return nil
}

func (l *Line) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	l.name = name
	return nil
}

func (l *Line) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unit price",
			fmt.Errorf("%v is negative", unitPrice))
	}
	l.unitPrice = unitPrice
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}
