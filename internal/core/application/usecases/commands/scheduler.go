package commands

import (
	"orderflow/internal/core/domain/model/account"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/services"
)

// TransitionScheduler arms the delayed status transitions of a progression
// plan. Implementations fire each step after its delay; the handler executing
// a fired step decides whether the transition still applies.
type TransitionScheduler interface {
	Schedule(accountID account.ID, orderID kernel.UUID, plan services.Plan)
}
