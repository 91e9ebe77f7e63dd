package cart

// Cart is the mutable line collection for one shopping session. Lines keep
// insertion order and stay unique per product id.
//
// The cart is confined to a single session and is not safe for concurrent
// use; the order history repository owns the shared-state locking.
type Cart struct {
	lines []Line
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make([]Line, 0)}
}

// Add merges a line into the cart. A repeat add of the same product increments
// the stored quantity by one; otherwise the line is appended as-is.
func (c *Cart) Add(line Line) error {
	if err := line.Validate(); err != nil {
		return err
	}

	for i := range c.lines {
		if c.lines[i].productID == line.productID {
			c.lines[i].quantity++
			return nil
		}
	}

	c.lines = append(c.lines, line)
	return nil
}

// Remove deletes the line for the given product. Removing an absent product
// is a no-op, not an error.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].productID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the stored quantity for the given product. A quantity
// of zero or less removes the line, so negative quantities are never stored.
// Setting the quantity of an absent product is a no-op.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.lines {
		if c.lines[i].productID == productID {
			c.lines[i].quantity = quantity
			return
		}
	}
}

// Total recomputes the cart total from scratch on every call, so it can never
// go stale relative to the lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns a defensive copy of the cart's lines in insertion order.
// Mutating the cart afterwards does not affect the returned slice.
func (c *Cart) Lines() []Line {
	snapshot := make([]Line, len(c.lines))
	copy(snapshot, c.lines)
	return snapshot
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear empties the cart. Used after a successful submission and after a
// pre-submission cancellation.
func (c *Cart) Clear() {
	c.lines = c.lines[:0]
}
