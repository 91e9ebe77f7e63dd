package session_test

import (
	"testing"

	"orderflow/internal/core/application/session"
	"orderflow/internal/core/domain/model/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	t.Run("starts anonymous", func(t *testing.T) {
		s := session.NewSession()

		id, ok := s.CurrentAccount()

		assert.False(t, ok)
		assert.True(t, id.IsZero())
	})

	t.Run("login sets the current actor", func(t *testing.T) {
		s := session.NewSession()

		require.NoError(t, s.Login(account.ID("user1")))

		id, ok := s.CurrentAccount()
		assert.True(t, ok)
		assert.Equal(t, account.ID("user1"), id)
	})

	t.Run("login rejects the empty account", func(t *testing.T) {
		s := session.NewSession()

		require.Error(t, s.Login(account.ID("")))

		_, ok := s.CurrentAccount()
		assert.False(t, ok)
	})

	t.Run("logout returns to anonymous", func(t *testing.T) {
		s := session.NewSession()
		require.NoError(t, s.Login(account.ID("user1")))

		s.Logout()

		_, ok := s.CurrentAccount()
		assert.False(t, ok)
	})

	t.Run("login replaces the previous actor", func(t *testing.T) {
		s := session.NewSession()
		require.NoError(t, s.Login(account.ID("user1")))

		require.NoError(t, s.Login(account.ID("user2")))

		id, _ := s.CurrentAccount()
		assert.Equal(t, account.ID("user2"), id)
	})
}
