package kvstore_test

import (
	"testing"

	"orderflow/internal/adapters/out/memory/kvstore"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryKeyValueStore(t *testing.T) {
	t.Run("missing key returns ErrKeyNotFound", func(t *testing.T) {
		store := kvstore.NewInMemoryKeyValueStore()

		_, err := store.Get(t.Context(), "absent")

		require.ErrorIs(t, err, ports.ErrKeyNotFound)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		store := kvstore.NewInMemoryKeyValueStore()

		require.NoError(t, store.Put(t.Context(), "k", []byte(`{"a":1}`)))

		value, err := store.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), value)
	})

	t.Run("put replaces the previous value wholesale", func(t *testing.T) {
		store := kvstore.NewInMemoryKeyValueStore()
		require.NoError(t, store.Put(t.Context(), "k", []byte("old")))

		require.NoError(t, store.Put(t.Context(), "k", []byte("new")))

		value, err := store.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), value)
	})

	t.Run("stored bytes are isolated from caller mutation", func(t *testing.T) {
		store := kvstore.NewInMemoryKeyValueStore()
		original := []byte("immutable")
		require.NoError(t, store.Put(t.Context(), "k", original))

		original[0] = 'X'

		value, err := store.Get(t.Context(), "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("immutable"), value)
	})
}
