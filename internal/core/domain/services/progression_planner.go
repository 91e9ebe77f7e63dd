package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// Outcome is the randomized final fate drawn for an order at schedule time.
type Outcome int

const (
	// OutcomeUnknown is the zero value of an undrawn outcome.
	OutcomeUnknown Outcome = iota

	// OutcomeCancelled ends the order in Cancelled after a short delay.
	OutcomeCancelled

	// OutcomeStalled schedules no final transition: the order stays at
	// whatever intermediate state it reached, permanently. This is the
	// accepted "stuck in delivery" state, distinct from the terminal ones.
	OutcomeStalled

	// OutcomeDelivered ends the order in Delivered after a longer delay.
	OutcomeDelivered
)

// String returns the outcome name for logs.
func (o Outcome) String() string {
	switch o {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeStalled:
		return "stalled"
	case OutcomeDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// Step is one scheduled status transition: the target status and the delay,
// measured from submission time, after which it should fire.
type Step struct {
	Target order.Status
	Delay  time.Duration
}

// Plan is the full progression drawn for one order. The random outcome is
// drawn exactly once, at planning time, and carried here as data; nothing is
// re-drawn when the timers fire.
type Plan struct {
	steps   []Step
	outcome Outcome
}

// Steps returns the scheduled transitions in planning order.
func (p Plan) Steps() []Step {
	steps := make([]Step, len(p.steps))
	copy(steps, p.steps)
	return steps
}

// Outcome returns the final fate drawn for the order.
func (p Plan) Outcome() Outcome {
	return p.outcome
}

// ProgressionTiming carries the tunable delays and outcome probabilities of
// the simulated delivery pipeline.
type ProgressionTiming struct {
	// ShortDelay is the delay before the Pending -> InProgress transition.
	ShortDelay time.Duration

	// MediumDelay is the delay before the InProgress -> OutForDelivery
	// transition. Must be longer than ShortDelay.
	MediumDelay time.Duration

	// CancelDelay is the delay before the final Cancelled transition when
	// the cancel outcome is drawn.
	CancelDelay time.Duration

	// DeliverDelay is the delay before the final Delivered transition when
	// the deliver outcome is drawn.
	DeliverDelay time.Duration

	// CancelProbability, StallProbability and DeliverProbability weight the
	// final-outcome draw. They must sum to 1.
	CancelProbability  float64
	StallProbability   float64
	DeliverProbability float64
}

// DefaultProgressionTiming mirrors the simulation's stock schedule:
// In Progress after 3s, Out for Delivery after 6s, then 20% Cancelled at 4s,
// 30% stalled, 50% Delivered at 9s.
func DefaultProgressionTiming() ProgressionTiming {
	return ProgressionTiming{
		ShortDelay:         3 * time.Second,
		MediumDelay:        6 * time.Second,
		CancelDelay:        4 * time.Second,
		DeliverDelay:       9 * time.Second,
		CancelProbability:  0.2,
		StallProbability:   0.3,
		DeliverProbability: 0.5,
	}
}

// Validate checks the delays and the probability distribution.
func (t ProgressionTiming) Validate() error {
	var errsJoined []error

	if t.ShortDelay <= 0 {
		errsJoined = append(errsJoined, errs.NewValueIsInvalidError("short delay"))
	}
	if t.MediumDelay <= t.ShortDelay {
		errsJoined = append(errsJoined, errs.NewValueIsInvalidErrorWithCause("medium delay",
			fmt.Errorf("%s is not longer than the short delay %s", t.MediumDelay, t.ShortDelay)))
	}
	if t.CancelDelay <= 0 {
		errsJoined = append(errsJoined, errs.NewValueIsInvalidError("cancel delay"))
	}
	if t.DeliverDelay <= 0 {
		errsJoined = append(errsJoined, errs.NewValueIsInvalidError("deliver delay"))
	}

	for name, p := range map[string]float64{
		"cancelProbability":  t.CancelProbability,
		"stallProbability":   t.StallProbability,
		"deliverProbability": t.DeliverProbability,
	} {
		if p < 0 || p > 1 {
			errsJoined = append(errsJoined, errs.NewValueIsOutOfRangeError(name, p, 0, 1))
		}
	}

	sum := t.CancelProbability + t.StallProbability + t.DeliverProbability
	if math.Abs(sum-1) > 1e-9 {
		errsJoined = append(errsJoined, errs.NewValueIsInvalidErrorWithCause("outcome probabilities",
			fmt.Errorf("probabilities sum to %v, expected 1", sum)))
	}

	return errors.Join(errsJoined...)
}

// ProgressionPlanner draws progression plans for newly submitted orders.
type ProgressionPlanner struct {
	timing ProgressionTiming
}

// NewProgressionPlanner creates a planner with validated timing.
func NewProgressionPlanner(timing ProgressionTiming) (ProgressionPlanner, error) {
	if err := timing.Validate(); err != nil {
		return ProgressionPlanner{}, err
	}
	return ProgressionPlanner{timing: timing}, nil
}

// Timing returns the planner's configured timing.
func (p ProgressionPlanner) Timing() ProgressionTiming {
	return p.timing
}

// Plan draws the progression for one order.
//
// The two intermediate steps are always scheduled; the final step depends on
// a single draw from the configured distribution. Each scheduled step is
// still guarded at firing time ("Cancelled wins"), so a plan is a schedule,
// not a guarantee.
func (p ProgressionPlanner) Plan(rng *rand.Rand) Plan {
	steps := []Step{
		{Target: order.InProgress, Delay: p.timing.ShortDelay},
		{Target: order.OutForDelivery, Delay: p.timing.MediumDelay},
	}

	roll := rng.Float64()
	switch {
	case roll < p.timing.CancelProbability:
		return Plan{
			steps:   append(steps, Step{Target: order.Cancelled, Delay: p.timing.CancelDelay}),
			outcome: OutcomeCancelled,
		}
	case roll < p.timing.CancelProbability+p.timing.StallProbability:
		return Plan{steps: steps, outcome: OutcomeStalled}
	default:
		return Plan{
			steps:   append(steps, Step{Target: order.Delivered, Delay: p.timing.DeliverDelay}),
			outcome: OutcomeDelivered,
		}
	}
}
