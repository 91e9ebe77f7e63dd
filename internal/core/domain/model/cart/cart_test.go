package cart_test

import (
	"testing"

	"orderflow/internal/core/domain/model/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, productID, name string, unitPrice float64) cart.Line {
	t.Helper()
	line, err := cart.NewLine(productID, name, unitPrice)
	require.NoError(t, err)
	return line
}

func TestCart_Add(t *testing.T) {
	t.Run("should insert new line with quantity 1", func(t *testing.T) {
		c := cart.NewCart()

		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "p1", lines[0].ProductID())
		assert.Equal(t, 1, lines[0].Quantity())
	})

	t.Run("should merge repeat add into one line with quantity 2", func(t *testing.T) {
		c := cart.NewCart()

		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity())
	})

	t.Run("should keep insertion order across products", func(t *testing.T) {
		c := cart.NewCart()

		require.NoError(t, c.Add(mustLine(t, "p2", "Lemonade", 2.50)))
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))
		require.NoError(t, c.Add(mustLine(t, "p2", "Lemonade", 2.50)))

		lines := c.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p2", lines[0].ProductID())
		assert.Equal(t, "p1", lines[1].ProductID())
	})

	t.Run("should reject invalid line", func(t *testing.T) {
		c := cart.NewCart()

		err := c.Add(cart.Line{})

		require.Error(t, err)
		assert.True(t, c.IsEmpty())
	})
}

func TestCart_Remove(t *testing.T) {
	t.Run("should remove present line", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		c.Remove("p1")

		assert.True(t, c.IsEmpty())
	})

	t.Run("should be a no-op for absent product", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		c.Remove("missing")

		assert.Len(t, c.Lines(), 1)
	})
}

func TestCart_SetQuantity(t *testing.T) {
	t.Run("should replace the stored quantity", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		c.SetQuantity("p1", 5)

		assert.Equal(t, 5, c.Lines()[0].Quantity())
	})

	t.Run("should remove the line when quantity is zero", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		c.SetQuantity("p1", 0)

		assert.True(t, c.IsEmpty())
	})

	t.Run("should remove the line when quantity is negative", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		c.SetQuantity("p1", -3)

		assert.True(t, c.IsEmpty())
	})

	t.Run("should be a no-op for absent product", func(t *testing.T) {
		c := cart.NewCart()

		c.SetQuantity("missing", 4)

		assert.True(t, c.IsEmpty())
	})
}

func TestCart_Total(t *testing.T) {
	t.Run("should equal fresh recomputation after any mutation sequence", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))
		require.NoError(t, c.Add(mustLine(t, "p2", "Lemonade", 2.50)))
		c.SetQuantity("p2", 4)
		c.Remove("p1")
		require.NoError(t, c.Add(mustLine(t, "p3", "Tiramisu", 4.25)))

		expected := 0.0
		for _, line := range c.Lines() {
			expected += line.UnitPrice() * float64(line.Quantity())
		}
		assert.InDelta(t, expected, c.Total(), 1e-9)
	})

	t.Run("should be zero for empty cart", func(t *testing.T) {
		assert.Zero(t, cart.NewCart().Total())
	})

	t.Run("worked example: two units at 7.99", func(t *testing.T) {
		c := cart.NewCart()
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))
		require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))

		assert.InDelta(t, 15.98, c.Total(), 1e-9)
	})
}

func TestCart_Clear(t *testing.T) {
	c := cart.NewCart()
	require.NoError(t, c.Add(mustLine(t, "p1", "Margherita", 7.99)))
	snapshot := c.Lines()

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Total())
	// A snapshot taken before Clear stays intact.
	require.Len(t, snapshot, 1)
	assert.Equal(t, "p1", snapshot[0].ProductID())
}

func TestLine_Validate(t *testing.T) {
	t.Run("should reject empty product id", func(t *testing.T) {
		_, err := cart.NewLine("", "Margherita", 7.99)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "product id")
	})

	t.Run("should reject negative unit price", func(t *testing.T) {
		_, err := cart.NewLine("p1", "Margherita", -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unit price")
	})

	t.Run("should reject non-positive restored quantity", func(t *testing.T) {
		_, err := cart.RestoreLine("p1", "Margherita", 7.99, 0)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should expose subtotal", func(t *testing.T) {
		line, err := cart.RestoreLine("p1", "Margherita", 7.99, 2)

		require.NoError(t, err)
		assert.InDelta(t, 15.98, line.Subtotal(), 1e-9)
	})
}
