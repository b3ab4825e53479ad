// Package environment models clinical outcome drift and spontaneous dropout.
// This is the only component besides reporting that reads the hidden
// complexity label.
package environment

import (
	"math/rand"

	"panelsim/internal/models"
)

// Environment applies outcome transitions to patients. All randomness comes
// from the rng passed to each call.
type Environment struct {
	Params models.EnvParams
}

// New creates an environment with the given transition parameters
func New(params models.EnvParams) *Environment {
	return &Environment{Params: params}
}

// OutcomeDelta computes this year's change in the patient's outcome measure.
// Enrolled patients improve probabilistically, with complexity setting the
// base rate and engagement and literacy nudging it. Unenrolled easy patients
// drift flat; unenrolled complex patients decline. The caller applies the
// delta.
func (e *Environment) OutcomeDelta(p *models.Patient, rng *rand.Rand) float64 {
	if p.Status != models.StatusEnrolled {
		if p.Complexity == models.ComplexityEasy {
			return uniform(rng, -0.01, 0.01)
		}
		return uniform(rng, -0.05, 0.0)
	}

	var baseProb, magMin, magMax float64
	if p.Complexity == models.ComplexityEasy {
		baseProb = e.Params.EasyImprovementProb
		magMin, magMax = e.Params.EasyImprovementMin, e.Params.EasyImprovementMax
	} else {
		baseProb = e.Params.ComplexImprovementProb
		magMin, magMax = e.Params.ComplexImprovementMin, e.Params.ComplexImprovementMax
	}

	engagementNudge := (p.Engagement - 0.5) * 0.2
	literacyNudge := (p.DigitalLiteracy - 0.5) * 0.1
	prob := clamp(baseProb+engagementNudge+literacyNudge, 0.05, 0.9)

	if rng.Float64() < prob {
		magnitude := uniform(rng, magMin, magMax)
		// Engaged patients realize more of the improvement
		return magnitude * (0.8 + 0.4*p.Engagement)
	}
	return uniform(rng, -0.02, 0.02)
}

// SpontaneousDropout decides whether an enrolled patient disengages this
// year. Low engagement, low digital literacy and complex status each add an
// independent risk contribution.
func (e *Environment) SpontaneousDropout(p *models.Patient, rng *rand.Rand) bool {
	if p.Status != models.StatusEnrolled {
		return false
	}

	prob := e.Params.BaseDropoutRate
	if p.Engagement < 0.3 {
		prob += e.Params.LowEngagementDropout
	}
	if p.DigitalLiteracy < 0.3 {
		prob += e.Params.LowLiteracyDropout
	}
	if p.Complexity == models.ComplexityComplex {
		prob += e.Params.ComplexDropout
	}
	prob = clamp(prob, 0, e.Params.MaxDropoutProb)

	return rng.Float64() < prob
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
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
