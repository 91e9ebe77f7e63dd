package services

import (
	"fmt"
	"math/rand"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// MinRosterSize is the smallest roster the engine accepts. The simulation
// contract requires at least four partners so random assignment stays varied.
const MinRosterSize = 4

// PartnerRoster is the fixed set of delivery partners available for
// assignment. One partner is chosen uniformly at random per order.
type PartnerRoster struct {
	partners []order.Partner
}

// NewPartnerRoster creates a roster from the given partners.
// Requires at least MinRosterSize valid entries.
func NewPartnerRoster(partners []order.Partner) (PartnerRoster, error) {
	if len(partners) < MinRosterSize {
		return PartnerRoster{}, errs.NewValueIsInvalidErrorWithCause("partner roster",
			fmt.Errorf("%d entries provided, at least %d required", len(partners), MinRosterSize))
	}

	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return PartnerRoster{}, err
		}
	}

	roster := make([]order.Partner, len(partners))
	copy(roster, partners)
	return PartnerRoster{partners: roster}, nil
}

// DefaultPartnerRoster returns the built-in roster used when no roster is
// configured.
func DefaultPartnerRoster() PartnerRoster {
	names := []struct{ name, contact string }{
		{"Veera Sangoli", "+91-9878-76-8765"},
		{"Samarth Uphadhyaya", "+91-998-987-6543"},
		{"Manikanta Veraga", "+91-879-456-7890"},
		{"Ketan Kulkarni", "+91-687-897-7880"},
	}

	partners := make([]order.Partner, 0, len(names))
	for _, n := range names {
		p, err := order.NewPartner(n.name, n.contact)
		if err != nil {
			// The built-in entries are statically valid.
			panic(err)
		}
		partners = append(partners, p)
	}

	roster, err := NewPartnerRoster(partners)
	if err != nil {
		panic(err)
	}
	return roster
}

// Partners returns a copy of the roster entries.
func (r PartnerRoster) Partners() []order.Partner {
	partners := make([]order.Partner, len(r.partners))
	copy(partners, r.partners)
	return partners
}

// Contains reports whether the given partner is a roster entry.
func (r PartnerRoster) Contains(partner order.Partner) bool {
	for _, p := range r.partners {
		if p.IsEqual(partner) {
			return true
		}
	}
	return false
}

// Pick chooses one partner uniformly at random using the supplied source.
func (r PartnerRoster) Pick(rng *rand.Rand) order.Partner {
	return r.partners[rng.Intn(len(r.partners))]
}

// Validate checks that the roster was built through NewPartnerRoster.
func (r PartnerRoster) Validate() error {
	if len(r.partners) < MinRosterSize {
		return errs.NewValueIsRequiredError("partner roster must be created via NewPartnerRoster")
	}
	return nil
}
