// Package optimizer searches policy-parameter space by hill climbing. It
// sees only policy parameters and scalar fitness values; patients and their
// hidden labels never cross this package's API.
package optimizer

import (
	"fmt"
	"math/rand"

	"panelsim/internal/models"
	"panelsim/internal/services/policy"
)

// EvaluateFunc scores a candidate policy, typically by running a full
// simulation and summing yearly rewards
type EvaluateFunc func(models.PolicyParams) (float64, error)

// Result holds the best policy found and the fitness trajectory
type Result struct {
	Best        models.PolicyParams
	BestFitness float64
	// History records the best fitness after each iteration, starting with
	// the initial policy's fitness. Non-decreasing by construction.
	History []float64
}

// Optimize runs a fixed budget of hill-climbing iterations. Each candidate
// is a bounded random perturbation of the current best; a candidate replaces
// the best only on strict improvement, so ties keep the incumbent. Zero
// iterations is a valid no-op returning the initial policy and its fitness.
// Deterministic for a fixed rng.
func Optimize(initial models.PolicyParams, evaluate EvaluateFunc, iterations int, rng *rand.Rand) (Result, error) {
	if iterations < 0 {
		return Result{}, fmt.Errorf("iteration budget must be non-negative, got %d", iterations)
	}
	if err := initial.Validate(); err != nil {
		return Result{}, fmt.Errorf("initial policy: %w", err)
	}

	best := initial
	bestFitness, err := evaluate(best)
	if err != nil {
		return Result{}, fmt.Errorf("evaluating initial policy: %w", err)
	}

	history := make([]float64, 0, iterations+1)
	history = append(history, bestFitness)

	for i := 0; i < iterations; i++ {
		// Shrink the mutation step as the budget runs down
		scale := 0.2*(1-float64(i)/float64(iterations)) + 0.05

		candidate := policy.Mutate(best, rng, scale)
		fitness, err := evaluate(candidate)
		if err != nil {
			return Result{}, fmt.Errorf("evaluating candidate at iteration %d: %w", i, err)
		}

		if fitness > bestFitness {
			best = candidate
			bestFitness = fitness
		}
		history = append(history, bestFitness)
	}

	return Result{Best: best, BestFitness: bestFitness, History: history}, nil
}
