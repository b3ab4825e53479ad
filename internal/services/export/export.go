// Package export writes simulation results for the consuming layer: a CSV
// metrics table and optionally passphrase-encrypted archives. The core never
// touches disk; everything here operates on results it is handed.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"panelsim/internal/models"
)

var metricsHeader = []string{
	"year",
	"enrolled_count", "dropped_count", "never_enrolled_count", "total_count",
	"enrolled_complex_count", "dropped_complex_count",
	"enrolled_avg_outcome", "dropped_avg_outcome", "never_enrolled_avg_outcome", "total_avg_outcome",
	"enrolled_avg_improvement", "dropped_avg_improvement", "never_enrolled_avg_improvement",
	"pct_complex_enrolled", "pct_complex_dropped", "pct_complex_never_enrolled",
	"income", "bonus", "cost", "reward",
	"strokes_enrolled", "strokes_dropped", "strokes_total",
}

// WriteMetricsCSV writes the per-year metrics table as CSV
func WriteMetricsCSV(w io.Writer, years []models.YearMetrics) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(metricsHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, y := range years {
		row := []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.EnrolledCount),
			strconv.Itoa(y.DroppedCount),
			strconv.Itoa(y.NeverEnrolledCount),
			strconv.Itoa(y.TotalCount),
			strconv.Itoa(y.EnrolledComplexCount),
			strconv.Itoa(y.DroppedComplexCount),
			formatFloat(y.EnrolledAvgOutcome),
			formatFloat(y.DroppedAvgOutcome),
			formatFloat(y.NeverEnrolledAvgOutcome),
			formatFloat(y.TotalAvgOutcome),
			formatFloat(y.EnrolledAvgImprovement),
			formatFloat(y.DroppedAvgImprovement),
			formatFloat(y.NeverEnrolledAvgImprovement),
			formatFloat(y.PctComplexEnrolled),
			formatFloat(y.PctComplexDropped),
			formatFloat(y.PctComplexNeverEnrolled),
			formatFloat(y.Income),
			formatFloat(y.Bonus),
			formatFloat(y.Cost),
			formatFloat(y.Reward),
			formatFloat(y.StrokesEnrolled),
			formatFloat(y.StrokesDropped),
			formatFloat(y.StrokesTotal),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for year %d: %w", y.Year, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
