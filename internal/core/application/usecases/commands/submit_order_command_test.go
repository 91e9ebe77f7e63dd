package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
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

func TestNewSubmitOrderCommand(t *testing.T) {
	t.Run("should create command from valid lines", func(t *testing.T) {
		lines := []cart.Line{mustLine(t, "p1", "Wireless Mouse", 29.99)}

		cmd, err := commands.NewSubmitOrderCommand(lines, "ring the bell")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Len(t, cmd.Lines(), 1)
		assert.Equal(t, "ring the bell", cmd.Notes())
	})

	t.Run("should accept an empty snapshot", func(t *testing.T) {
		cmd, err := commands.NewSubmitOrderCommand(nil, "")

		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Empty(t, cmd.Lines())
	})

	t.Run("should reject an invalid line", func(t *testing.T) {
		_, err := commands.NewSubmitOrderCommand([]cart.Line{{}}, "")

		require.Error(t, err)
	})

	t.Run("should snapshot the lines at construction", func(t *testing.T) {
		lines := []cart.Line{mustLine(t, "p1", "Wireless Mouse", 29.99)}
		cmd, err := commands.NewSubmitOrderCommand(lines, "")
		require.NoError(t, err)

		lines[0] = mustLine(t, "p2", "Keyboard", 49.5)

		assert.Equal(t, "p1", cmd.Lines()[0].ProductID())
	})

	t.Run("should fail validation for zero value command", func(t *testing.T) {
		var cmd commands.SubmitOrderCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrSubmitOrderCommandIsNotConstructed)
	})
}
