package order

import (
	"fmt"

	"orderflow/internal/pkg/errs"
)

// Status represents the delivery state of an order.
//
// Non-terminal progression:
//
//	Pending ──> InProgress ──> OutForDelivery ──┬──> Delivered
//	                                            └──> Cancelled
//
// Cancelled can also be reached directly from any non-terminal state.
// Delivered and Cancelled are terminal; no transition leaves them. An order
// whose randomized outcome draws the "stall" branch simply stops receiving
// transitions and stays at OutForDelivery without ever becoming terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0)
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at submission time.
	Pending

	// InProgress indicates the order is being prepared.
	InProgress

	// OutForDelivery indicates the order left with the delivery partner.
	OutForDelivery

	// Delivered is the terminal success status.
	Delivered

	// Cancelled is the terminal cancellation status. It always wins: once an
	// order is Cancelled, every later-firing scheduled transition is suppressed.
	Cancelled
)

// Status strings match the persisted representation, which in turn matches
// what the view layer displays.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		InProgress:     "In Progress",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		InProgress:     "In Progress",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// StatusFromString parses the persisted string form of a status.
// Returns an error for unrecognized input; load-time migration maps blanks
// and unknown values to Pending before calling this.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined delivery states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable (and persisted) name of the status.
// Implements fmt.Stringer; safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Transition returns the new status for a requested change.
//
// Rules:
//   - the current status must not be terminal (Cancelled wins; Delivered is final)
//   - the target must be a valid status other than Pending (orders are only
//     Pending at creation, never transitioned back into it)
//
// Scheduled callbacks may fire in any relative order depending on the
// configured delays, so this check runs at every firing, not only once.
func (s Status) Transition(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is terminal and cannot transition", s))
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if target == Pending {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition back to %s", Pending))
	}

	return target, nil
}
