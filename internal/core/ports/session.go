package ports

import "orderflow/internal/core/domain/model/account"

// Session supplies the current actor. The core only reads it: whichever
// account is current decides which history partition is visible and writable.
// When no account is present (anonymous session) every history mutation
// becomes a silent no-op.
type Session interface {
	// CurrentAccount returns the active account and true, or the zero ID and
	// false for an anonymous session.
	CurrentAccount() (account.ID, bool)
}
