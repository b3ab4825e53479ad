package simulation

import (
	"fmt"

	"panelsim/internal/models"
)

// chartSeries extracts the series a chart needs from a run's metrics table
func chartSeries(result *models.SimulationResult, chartType string) (map[string]interface{}, error) {
	years := make([]int, 0, len(result.Years))
	for _, y := range result.Years {
		years = append(years, y.Year)
	}

	switch chartType {
	case "enrollment":
		return map[string]interface{}{
			"years":          years,
			"enrolled":       collectInt(result.Years, func(y models.YearMetrics) int { return y.EnrolledCount }),
			"dropped":        collectInt(result.Years, func(y models.YearMetrics) int { return y.DroppedCount }),
			"never_enrolled": collectInt(result.Years, func(y models.YearMetrics) int { return y.NeverEnrolledCount }),
		}, nil
	case "complexity":
		return map[string]interface{}{
			"years":                years,
			"pct_complex_enrolled": collect(result.Years, func(y models.YearMetrics) float64 { return y.PctComplexEnrolled }),
			"pct_complex_dropped":  collect(result.Years, func(y models.YearMetrics) float64 { return y.PctComplexDropped }),
		}, nil
	case "reward":
		return map[string]interface{}{
			"years":  years,
			"income": collect(result.Years, func(y models.YearMetrics) float64 { return y.Income }),
			"bonus":  collect(result.Years, func(y models.YearMetrics) float64 { return y.Bonus }),
			"cost":   collect(result.Years, func(y models.YearMetrics) float64 { return y.Cost }),
			"reward": collect(result.Years, func(y models.YearMetrics) float64 { return y.Reward }),
		}, nil
	case "outcomes":
		return map[string]interface{}{
			"years":          years,
			"enrolled":       collect(result.Years, func(y models.YearMetrics) float64 { return y.EnrolledAvgOutcome }),
			"dropped":        collect(result.Years, func(y models.YearMetrics) float64 { return y.DroppedAvgOutcome }),
			"never_enrolled": collect(result.Years, func(y models.YearMetrics) float64 { return y.NeverEnrolledAvgOutcome }),
		}, nil
	case "strokes":
		return map[string]interface{}{
			"years": years,
			"total": collect(result.Years, func(y models.YearMetrics) float64 { return y.StrokesTotal }),
		}, nil
	default:
		return nil, fmt.Errorf("unknown chart type: %s", chartType)
	}
}

func collect(years []models.YearMetrics, f func(models.YearMetrics) float64) []float64 {
	out := make([]float64, 0, len(years))
	for _, y := range years {
		out = append(out, f(y))
	}
	return out
}

func collectInt(years []models.YearMetrics, f func(models.YearMetrics) int) []int {
	out := make([]int, 0, len(years))
	for _, y := range years {
		out = append(out, f(y))
	}
	return out
}

// summarizePopulation reports generation-level statistics for a preview
// request. Complexity appears here because this is reporting output, not
// policy input.
func summarizePopulation(patients []*models.Patient) map[string]interface{} {
	var complexCount int
	var engEasy, engComplex, litEasy, litComplex float64
	var easyCount int
	for _, p := range patients {
		if p.Complexity == models.ComplexityComplex {
			complexCount++
			engComplex += p.Engagement
			litComplex += p.DigitalLiteracy
		} else {
			easyCount++
			engEasy += p.Engagement
			litEasy += p.DigitalLiteracy
		}
	}

	summary := map[string]interface{}{
		"total":         len(patients),
		"complex_count": complexCount,
		"easy_count":    easyCount,
	}
	if complexCount > 0 {
		summary["complex_avg_engagement"] = engComplex / float64(complexCount)
		summary["complex_avg_literacy"] = litComplex / float64(complexCount)
	}
	if easyCount > 0 {
		summary["easy_avg_engagement"] = engEasy / float64(easyCount)
		summary["easy_avg_literacy"] = litEasy / float64(easyCount)
	}
	return summary
}
