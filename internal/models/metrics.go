package models

// YearMetrics is one row of the per-year metrics table. It is produced by the
// simulator and consumed only for reporting; the optimizer sees nothing from
// it except the scalar Reward.
type YearMetrics struct {
	Year int `json:"year"`

	// Counts per status
	EnrolledCount      int `json:"enrolled_count"`
	DroppedCount       int `json:"dropped_count"`
	NeverEnrolledCount int `json:"never_enrolled_count"`
	TotalCount         int `json:"total_count"`

	// Complexity breakdown
	EnrolledComplexCount int `json:"enrolled_complex_count"`
	DroppedComplexCount  int `json:"dropped_complex_count"`

	// Average outcome level per status group
	EnrolledAvgOutcome      float64 `json:"enrolled_avg_outcome"`
	DroppedAvgOutcome       float64 `json:"dropped_avg_outcome"`
	NeverEnrolledAvgOutcome float64 `json:"never_enrolled_avg_outcome"`
	TotalAvgOutcome         float64 `json:"total_avg_outcome"`

	// Average outcome delta per status group (this year)
	EnrolledAvgImprovement      float64 `json:"enrolled_avg_improvement"`
	DroppedAvgImprovement       float64 `json:"dropped_avg_improvement"`
	NeverEnrolledAvgImprovement float64 `json:"never_enrolled_avg_improvement"`

	// Fraction complex within each status group
	PctComplexEnrolled      float64 `json:"pct_complex_enrolled"`
	PctComplexDropped       float64 `json:"pct_complex_dropped"`
	PctComplexNeverEnrolled float64 `json:"pct_complex_never_enrolled"`

	// Financial components
	Income float64 `json:"income"`
	Bonus  float64 `json:"bonus"`
	Cost   float64 `json:"cost"`
	Reward float64 `json:"reward"`

	// Expected adverse events from poor outcome control
	StrokesEnrolled float64 `json:"strokes_enrolled"`
	StrokesDropped  float64 `json:"strokes_dropped"`
	StrokesTotal    float64 `json:"strokes_total"`
}

// PatientOutcome is the final per-patient state returned by a run
type PatientOutcome struct {
	ID             int        `json:"id"`
	Complexity     Complexity `json:"complexity"`
	Status         Status     `json:"status"`
	InitialOutcome float64    `json:"initial_outcome"`
	FinalOutcome   float64    `json:"final_outcome"`
	YearEnrolled   *int       `json:"year_enrolled,omitempty"`
	YearDropped    *int       `json:"year_dropped,omitempty"`
}

// SimulationResult is the full output of one simulation run
type SimulationResult struct {
	RunID    string           `json:"run_id"`
	Years    []YearMetrics    `json:"years"`
	Patients []PatientOutcome `json:"patients"`
	Policy   PolicyParams     `json:"policy"`
	// TotalReward is the sum of per-year rewards, the scalar the optimizer
	// maximizes
	TotalReward float64 `json:"total_reward"`
}

// OptimizationResult holds the best policy found and the fitness trajectory
type OptimizationResult struct {
	RunID      string       `json:"run_id"`
	BestPolicy PolicyParams `json:"best_policy"`
	BestReward float64      `json:"best_reward"`
	// History is the best fitness after each iteration, length iterations+1
	// including the initial policy's fitness
	History []float64         `json:"history"`
	Final   *SimulationResult `json:"final,omitempty"`
}

// ComparisonResult pairs a baseline run with an optimized run over the same
// population and seed
type ComparisonResult struct {
	RunID     string              `json:"run_id"`
	Baseline  *SimulationResult   `json:"baseline"`
	Optimized *OptimizationResult `json:"optimized"`
}

// TwoPanelResult holds two organizations' runs over a shared population,
// one seeded with a complex-heavy initial panel and one with a
// representative panel
type TwoPanelResult struct {
	RunID          string            `json:"run_id"`
	ComplexHeavy   *SimulationResult `json:"complex_heavy"`
	Representative *SimulationResult `json:"representative"`
	ComplexPolicy  PolicyParams      `json:"complex_heavy_policy"`
	RepPolicy      PolicyParams      `json:"representative_policy"`
}
