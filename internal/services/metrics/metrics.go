// Package metrics computes the per-year reporting table. It reads the hidden
// complexity label for reporting only; nothing computed here flows back into
// the policy except through the scalar reward.
package metrics

import (
	"panelsim/internal/models"
	"panelsim/internal/services/reward"
)

// ComputeYear builds the YearMetrics row for one simulated year. deltas maps
// patient ID to this year's outcome delta.
func ComputeYear(patients []*models.Patient, year int, deltas map[int]float64, fin models.FinancialParams) models.YearMetrics {
	var enrolled, dropped, never []*models.Patient
	for _, p := range patients {
		switch p.Status {
		case models.StatusEnrolled:
			enrolled = append(enrolled, p)
		case models.StatusDropped:
			dropped = append(dropped, p)
		default:
			never = append(never, p)
		}
	}

	enrolledDeltas := make([]float64, 0, len(enrolled))
	for _, p := range enrolled {
		enrolledDeltas = append(enrolledDeltas, deltas[p.ID])
	}
	rc := reward.ComputeYearReward(len(enrolled), enrolledDeltas, fin)

	m := models.YearMetrics{
		Year:               year,
		EnrolledCount:      len(enrolled),
		DroppedCount:       len(dropped),
		NeverEnrolledCount: len(never),
		TotalCount:         len(patients),

		EnrolledComplexCount: countComplex(enrolled),
		DroppedComplexCount:  countComplex(dropped),

		EnrolledAvgOutcome:      avgOutcome(enrolled),
		DroppedAvgOutcome:       avgOutcome(dropped),
		NeverEnrolledAvgOutcome: avgOutcome(never),
		TotalAvgOutcome:         avgOutcome(patients),

		EnrolledAvgImprovement:      avgDelta(enrolled, deltas),
		DroppedAvgImprovement:       avgDelta(dropped, deltas),
		NeverEnrolledAvgImprovement: avgDelta(never, deltas),

		PctComplexEnrolled:      fractionComplex(enrolled),
		PctComplexDropped:       fractionComplex(dropped),
		PctComplexNeverEnrolled: fractionComplex(never),

		Income: rc.Income,
		Bonus:  rc.Bonus,
		Cost:   rc.Cost,
		Reward: rc.Total,

		StrokesEnrolled: estimateStrokes(enrolled),
		StrokesDropped:  estimateStrokes(dropped),
	}
	m.StrokesTotal = m.StrokesEnrolled + m.StrokesDropped + estimateStrokes(never)
	return m
}

func countComplex(patients []*models.Patient) int {
	n := 0
	for _, p := range patients {
		if p.Complexity == models.ComplexityComplex {
			n++
		}
	}
	return n
}

func fractionComplex(patients []*models.Patient) float64 {
	if len(patients) == 0 {
		return 0
	}
	return float64(countComplex(patients)) / float64(len(patients))
}

func avgOutcome(patients []*models.Patient) float64 {
	if len(patients) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range patients {
		sum += p.CurrentOutcome
	}
	return sum / float64(len(patients))
}

func avgDelta(patients []*models.Patient, deltas map[int]float64) float64 {
	if len(patients) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range patients {
		sum += deltas[p.ID]
	}
	return sum / float64(len(patients))
}

// estimateStrokes converts poor outcome control into an expected adverse
// event count (1% annual risk per unit of uncontrolled outcome)
func estimateStrokes(patients []*models.Patient) float64 {
	risk := 0.0
	for _, p := range patients {
		poorControl := 1.0 - p.CurrentOutcome
		if poorControl < 0 {
			poorControl = 0
		}
		risk += poorControl * 0.01
	}
	return risk
}
