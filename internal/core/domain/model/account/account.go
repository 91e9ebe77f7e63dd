// Package account defines the opaque identifier that partitions order history.
// The core never inspects the identifier's shape; it is only used as a key
// into the persistent store and as the "current actor" in a session.
package account

import "orderflow/internal/pkg/errs"

// ErrAccountIDIsRequired indicates an empty account identifier.
var ErrAccountIDIsRequired = errs.NewValueIsRequiredError("account id")

// ID is an opaque account identifier. The zero value means "no account",
// which models an anonymous session.
type ID string

// Validate returns ErrAccountIDIsRequired for the empty identifier.
func (id ID) Validate() error {
	if id == "" {
		return ErrAccountIDIsRequired
	}
	return nil
}

// IsZero reports whether the identifier is empty (anonymous session).
func (id ID) IsZero() bool {
	return id == ""
}

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}
