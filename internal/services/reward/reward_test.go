package reward

import (
	"math"
	"testing"

	"panelsim/internal/models"
)

func defaultFin() models.FinancialParams {
	return models.FinancialParams{PBPM: 50, BonusWeight: 1000, CostPerPatient: 300}
}

// TestComputeYearReward verifies the three-term payment model against
// hand-computed values
func TestComputeYearReward(t *testing.T) {
	fin := defaultFin()

	t.Run("zero enrollees score zero everywhere", func(t *testing.T) {
		c := ComputeYearReward(0, nil, fin)
		if c.Income != 0 || c.Bonus != 0 || c.Cost != 0 || c.Total != 0 {
			t.Errorf("empty panel scored %+v, want all zeros", c)
		}
	})

	t.Run("hand-computed single year", func(t *testing.T) {
		// 10 enrollees averaging +0.05 improvement:
		// income = 50 * 10 * 12 = 6000
		// bonus  = 1000 * 0.05 * 10 = 500
		// cost   = 300 * 10 = 3000
		deltas := []float64{0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05, 0.05}
		c := ComputeYearReward(10, deltas, fin)

		if c.Income != 6000 {
			t.Errorf("income = %v, want 6000", c.Income)
		}
		if math.Abs(c.Bonus-500) > 1e-9 {
			t.Errorf("bonus = %v, want 500", c.Bonus)
		}
		if c.Cost != 3000 {
			t.Errorf("cost = %v, want 3000", c.Cost)
		}
		if math.Abs(c.Total-3500) > 1e-9 {
			t.Errorf("total = %v, want 3500", c.Total)
		}
	})

	t.Run("negative average improvement produces negative bonus", func(t *testing.T) {
		c := ComputeYearReward(4, []float64{-0.05, -0.05, -0.05, -0.05}, fin)
		if c.Bonus >= 0 {
			t.Errorf("bonus = %v, want negative", c.Bonus)
		}
		// income = 2400, bonus = -200, cost = 1200
		if math.Abs(c.Total-1000) > 1e-9 {
			t.Errorf("total = %v, want 1000", c.Total)
		}
	})

	t.Run("missing deltas score as zero improvement", func(t *testing.T) {
		c := ComputeYearReward(5, nil, fin)
		if c.Bonus != 0 {
			t.Errorf("bonus = %v, want 0 when no deltas recorded", c.Bonus)
		}
		if c.Income != 3000 || c.Cost != 1500 {
			t.Errorf("income/cost = %v/%v, want 3000/1500", c.Income, c.Cost)
		}
	})
}

// TestDroppingLowDeltaPatientsRaisesAverage constructs a panel where the
// low-delta patients decline on average, then verifies that excluding them
// at successively higher drop thresholds strictly raises the remaining
// panel's average improvement
func TestDroppingLowDeltaPatientsRaisesAverage(t *testing.T) {
	deltas := []float64{0.15, 0.12, 0.10, 0.01, -0.02, -0.04, -0.06}

	keepAbove := func(threshold float64) []float64 {
		var kept []float64
		for _, d := range deltas {
			if d >= threshold {
				kept = append(kept, d)
			}
		}
		return kept
	}

	prev := avgImprovement(deltas)
	for _, threshold := range []float64{0.0, 0.05, 0.11} {
		kept := keepAbove(threshold)
		avg := avgImprovement(kept)
		if avg <= prev {
			t.Errorf("threshold %.2f: remaining avg %.4f not above previous %.4f", threshold, avg, prev)
		}
		prev = avg
	}
}

// TestRewardNonMonotonicInPanelSize shows that a smaller panel of
// high-improvers can outscore a larger mixed panel. This non-monotonicity is
// what makes selective exclusion profitable.
func TestRewardNonMonotonicInPanelSize(t *testing.T) {
	// High-cost regime where the margin per patient is thin
	fin := models.FinancialParams{PBPM: 20, BonusWeight: 5000, CostPerPatient: 400}

	// 5 patients all improving 0.15
	small := ComputeYearReward(5, []float64{0.15, 0.15, 0.15, 0.15, 0.15}, fin)

	// Same 5 plus 5 decliners at -0.05
	mixed := ComputeYearReward(10, []float64{0.15, 0.15, 0.15, 0.15, 0.15, -0.05, -0.05, -0.05, -0.05, -0.05}, fin)

	if small.Total <= mixed.Total {
		t.Errorf("small high-improving panel scored %v, larger mixed panel %v; expected the smaller panel to win",
			small.Total, mixed.Total)
	}
}
