// Package policy implements the enrollment decision rule. It operates on the
// Observables view only; the hidden complexity label is not reachable from
// this package's API.
package policy

import (
	"math/rand"

	"panelsim/internal/models"
)

// Policy is a pure predicate bundle over four threshold parameters. It holds
// no state besides the parameters.
type Policy struct {
	Params models.PolicyParams
}

// New creates a policy with the given parameters
func New(params models.PolicyParams) *Policy {
	return &Policy{Params: params}
}

// ShouldEnroll reports whether a never-enrolled patient passes all three
// observable-feature thresholds, given remaining panel capacity
func (p *Policy) ShouldEnroll(obs models.Observables, panelFull bool) bool {
	if obs.Status != models.StatusNeverEnrolled || panelFull {
		return false
	}
	if obs.Engagement < p.Params.MinEngagement {
		return false
	}
	if obs.NumConditions > p.Params.MaxNumConditions {
		return false
	}
	if obs.DigitalLiteracy < p.Params.MinDigitalLiteracy {
		return false
	}
	return true
}

// ShouldDrop reports whether an enrolled patient's outcome delta this year
// falls below the drop threshold
func (p *Policy) ShouldDrop(obs models.Observables, outcomeDelta float64) bool {
	if obs.Status != models.StatusEnrolled {
		return false
	}
	return outcomeDelta < p.Params.DropThresholdDelta
}

// Mutate returns a perturbed copy of the parameters for the hill-climbing
// search. Each parameter is nudged by a bounded random step and clamped to
// its valid domain; the condition-count threshold moves only occasionally
// since it is discrete.
func Mutate(params models.PolicyParams, rng *rand.Rand, scale float64) models.PolicyParams {
	next := params

	next.MinEngagement = clamp(params.MinEngagement+rng.NormFloat64()*scale*0.3, 0, 1)
	next.MinDigitalLiteracy = clamp(params.MinDigitalLiteracy+rng.NormFloat64()*scale*0.3, 0, 1)
	next.DropThresholdDelta = clamp(params.DropThresholdDelta+rng.NormFloat64()*scale*0.05, -0.1, 0.15)

	if rng.Float64() < 0.3 {
		step := rng.Intn(3) - 1 // -1, 0 or +1
		next.MaxNumConditions = clampInt(params.MaxNumConditions+step, 1, 10)
	}

	return next
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
