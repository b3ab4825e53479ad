// Package reward converts a year's enrolled panel into the scalar financial
// reward that drives the optimizer.
package reward

import "panelsim/internal/models"

// Components breaks the yearly reward into its three terms
type Components struct {
	Income float64 `json:"income"`
	Bonus  float64 `json:"bonus"`
	Cost   float64 `json:"cost"`
	Total  float64 `json:"total"`
}

// ComputeYearReward scores one year of an enrolled panel. deltas holds this
// year's outcome deltas for the enrolled set only. A panel with zero
// enrollees scores (0,0,0,0).
//
// Income scales with panel size while the bonus scales with the panel's
// AVERAGE improvement, so dropping low-improving patients raises the bonus
// and cuts cost at once. Total reward is not monotonic in panel size; that
// non-monotonicity is the incentive distortion the simulation demonstrates.
func ComputeYearReward(enrolledCount int, deltas []float64, fin models.FinancialParams) Components {
	if enrolledCount == 0 {
		return Components{}
	}

	income := fin.PBPM * float64(enrolledCount) * 12
	bonus := fin.BonusWeight * avgImprovement(deltas) * float64(enrolledCount)
	cost := fin.CostPerPatient * float64(enrolledCount)

	return Components{
		Income: income,
		Bonus:  bonus,
		Cost:   cost,
		Total:  income + bonus - cost,
	}
}

// avgImprovement is defined as 0 for an empty delta set
func avgImprovement(deltas []float64) float64 {
	if len(deltas) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range deltas {
		sum += d
	}
	return sum / float64(len(deltas))
}
