package models

// Complexity is the hidden care-complexity label assigned at generation time.
// It is read only by the environment and by reporting code; the enrollment
// policy never sees it.
type Complexity int

const (
	ComplexityEasy Complexity = iota
	ComplexityComplex
)

// String returns the label used in metrics output
func (c Complexity) String() string {
	if c == ComplexityComplex {
		return "complex"
	}
	return "easy"
}

// Status is a patient's enrollment state
type Status string

const (
	StatusNeverEnrolled Status = "never_enrolled"
	StatusEnrolled      Status = "enrolled"
	StatusDropped       Status = "dropped"
)

// Patient represents one individual tracked across simulation years.
// Observable attributes are fixed at creation; only Status and CurrentOutcome
// mutate during a run.
type Patient struct {
	ID         int        `json:"id"`
	Complexity Complexity `json:"complexity"` // hidden from the policy

	// Demographics
	Age           int `json:"age"`
	NumConditions int `json:"num_conditions"`

	// Comorbidity flags
	HasCKD        bool `json:"has_ckd"`
	HasCOPD       bool `json:"has_copd"`
	HasHF         bool `json:"has_hf"`
	HasDepression bool `json:"has_depression"`

	// Clinical baselines
	BaselineBP  float64 `json:"baseline_bp"`  // systolic
	BaselineA1C float64 `json:"baseline_a1c"` // HbA1c %

	// Engagement factors, all in [0,1]
	Engagement      float64 `json:"engagement"`
	PriorNoShowRate float64 `json:"prior_no_show_rate"`
	DeviceSyncRate  float64 `json:"device_sync_rate"`

	// Social determinants, all in [0,1]
	HousingStability   float64 `json:"housing_stability"`
	BroadbandScore     float64 `json:"broadband_score"`
	EnglishProficiency float64 `json:"english_proficiency"`
	DigitalLiteracy    float64 `json:"digital_literacy"`

	// Simulation state
	Status         Status  `json:"status"`
	InitialOutcome float64 `json:"initial_outcome"` // baseline BP control at start
	CurrentOutcome float64 `json:"current_outcome"`
	YearEnrolled   *int    `json:"year_enrolled,omitempty"`
	YearDropped    *int    `json:"year_dropped,omitempty"`
}

// Observables is the feature view visible to the enrollment policy. It
// structurally excludes the hidden complexity label, so the visibility
// boundary is enforced by the type system rather than by convention.
type Observables struct {
	Status          Status
	Age             int
	NumConditions   int
	Engagement      float64
	DigitalLiteracy float64
	PriorNoShowRate float64
	DeviceSyncRate  float64
}

// Observables returns the policy-visible view of the patient
func (p *Patient) Observables() Observables {
	return Observables{
		Status:          p.Status,
		Age:             p.Age,
		NumConditions:   p.NumConditions,
		Engagement:      p.Engagement,
		DigitalLiteracy: p.DigitalLiteracy,
		PriorNoShowRate: p.PriorNoShowRate,
		DeviceSyncRate:  p.DeviceSyncRate,
	}
}

// Reset returns the patient to its pre-simulation state. Used between
// optimizer trials so no state leaks from one candidate evaluation into the
// next.
func (p *Patient) Reset() {
	p.Status = StatusNeverEnrolled
	p.CurrentOutcome = p.InitialOutcome
	p.YearEnrolled = nil
	p.YearDropped = nil
}

// ResetAll resets every patient in the population
func ResetAll(patients []*Patient) {
	for _, p := range patients {
		p.Reset()
	}
}
