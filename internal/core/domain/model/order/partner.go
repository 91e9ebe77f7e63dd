package order

import "orderflow/internal/pkg/errs"

// Partner is the delivery partner assigned to an order. It is chosen once,
// uniformly at random from a fixed roster, and never reassigned.
type Partner struct {
	name    string
	contact string
}

// NewPartner creates a delivery partner value object.
// The name is required; the contact string is free-form.
func NewPartner(name, contact string) (Partner, error) {
	if name == "" {
		return Partner{}, errs.NewValueIsRequiredError("partner name")
	}
	return Partner{name: name, contact: contact}, nil
}

// NotAssignedPartner returns the sentinel used by load-time migration for
// orders persisted before partners existed.
func NotAssignedPartner() Partner {
	return Partner{name: "Not Assigned", contact: "N/A"}
}

// Name returns the partner's display name.
func (p Partner) Name() string {
	return p.name
}

// Contact returns the partner's contact string.
func (p Partner) Contact() string {
	return p.contact
}

// Validate checks that the partner carries a name.
func (p Partner) Validate() error {
	if p.name == "" {
		return errs.NewValueIsRequiredError("partner name")
	}
	return nil
}

// IsEqual reports whether two partners are the same roster entry.
func (p Partner) IsEqual(other Partner) bool {
	return p.name == other.name && p.contact == other.contact
}
