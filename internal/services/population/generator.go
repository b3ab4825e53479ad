// Package population generates synthetic patient panels with a hidden
// complexity label and correlated observable features.
package population

import (
	"fmt"
	"math/rand"
	"sort"

	"panelsim/internal/models"
)

// Generate produces n patients. Complexity is an independent Bernoulli trial
// with the given fraction; every observable attribute is drawn from a
// branch-conditional distribution and clamped to its valid range. The result
// is deterministic for a fixed rng.
func Generate(n int, complexFraction float64, rng *rand.Rand) ([]*models.Patient, error) {
	if n <= 0 {
		return nil, fmt.Errorf("population size must be positive, got %d", n)
	}
	if complexFraction < 0 || complexFraction > 1 {
		return nil, fmt.Errorf("complex fraction %.3f outside [0,1]", complexFraction)
	}

	patients := make([]*models.Patient, 0, n)
	for i := 0; i < n; i++ {
		patients = append(patients, generateOne(i, complexFraction, rng))
	}
	return patients, nil
}

func generateOne(id int, complexFraction float64, rng *rand.Rand) *models.Patient {
	isComplex := rng.Float64() < complexFraction

	p := &models.Patient{
		ID:     id,
		Status: models.StatusNeverEnrolled,
	}

	if isComplex {
		p.Complexity = models.ComplexityComplex
		p.Age = 65 + rng.Intn(25)
		p.NumConditions = 3 + rng.Intn(5)
		p.Engagement = betaSample(rng, 2, 5)
		p.DigitalLiteracy = betaSample(rng, 2, 5)
		p.BaselineBP = clamp(rng.NormFloat64()*15+150, 90, 200)
		p.BaselineA1C = clamp(rng.NormFloat64()*1.5+8.5, 5.0, 14.0)
		p.HousingStability = betaSample(rng, 3, 5)
		p.BroadbandScore = betaSample(rng, 3, 5)
		p.EnglishProficiency = betaSample(rng, 4, 3)
		p.PriorNoShowRate = betaSample(rng, 4, 3)
		p.DeviceSyncRate = betaSample(rng, 2, 4)
		p.HasCKD = rng.Float64() < 0.40
		p.HasCOPD = rng.Float64() < 0.50
		p.HasHF = rng.Float64() < 0.45
		p.HasDepression = rng.Float64() < 0.35
	} else {
		p.Complexity = models.ComplexityEasy
		p.Age = 50 + rng.Intn(25)
		p.NumConditions = 1 + rng.Intn(3)
		p.Engagement = betaSample(rng, 5, 2)
		p.DigitalLiteracy = betaSample(rng, 5, 2)
		p.BaselineBP = clamp(rng.NormFloat64()*10+135, 90, 200)
		p.BaselineA1C = clamp(rng.NormFloat64()*1.0+7.2, 5.0, 14.0)
		p.HousingStability = betaSample(rng, 5, 2)
		p.BroadbandScore = betaSample(rng, 5, 2)
		p.EnglishProficiency = betaSample(rng, 6, 2)
		p.PriorNoShowRate = betaSample(rng, 2, 5)
		p.DeviceSyncRate = betaSample(rng, 5, 2)
		p.HasCKD = rng.Float64() < 0.15
		p.HasCOPD = rng.Float64() < 0.20
		p.HasHF = rng.Float64() < 0.15
		p.HasDepression = rng.Float64() < 0.20
	}

	p.InitialOutcome = initialOutcome(p.BaselineBP, rng)
	p.CurrentOutcome = p.InitialOutcome
	return p
}

// initialOutcome maps baseline systolic BP to a starting BP-control score
func initialOutcome(bp float64, rng *rand.Rand) float64 {
	switch {
	case bp < 120:
		return uniform(rng, 0.85, 0.95)
	case bp < 140:
		return uniform(rng, 0.60, 0.75)
	case bp < 160:
		return uniform(rng, 0.30, 0.50)
	default:
		return uniform(rng, 0.10, 0.30)
	}
}

// betaSample draws from Beta(a,b) for integer shape parameters using the
// order-statistic identity: the a-th smallest of a+b-1 uniforms.
func betaSample(rng *rand.Rand, a, b int) float64 {
	u := make([]float64, a+b-1)
	for i := range u {
		u[i] = rng.Float64()
	}
	sort.Float64s(u)
	return u[a-1]
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
