// Package simulator drives the yearly enrollment loop: policy enrollment,
// environment outcome updates, dropout, and metrics, in a fixed order.
package simulator

import (
	"fmt"
	"math/rand"

	"panelsim/internal/models"
	"panelsim/internal/services/environment"
	"panelsim/internal/services/metrics"
	"panelsim/internal/services/policy"
)

// Simulator runs yearly panel simulations for one settings bundle
type Simulator struct {
	settings models.SimSettings
	env      *environment.Environment
}

// New validates the settings and builds a simulator
func New(settings models.SimSettings) (*Simulator, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation settings: %w", err)
	}
	return &Simulator{
		settings: settings,
		env:      environment.New(settings.Env),
	}, nil
}

// Settings returns the validated settings this simulator runs with
func (s *Simulator) Settings() models.SimSettings {
	return s.settings
}

// Run simulates NumYears over the given population with the given policy.
// The metrics table starts with a year-0 baseline row (no transitions, zero
// deltas) followed by one row per simulated year. Patients are mutated in
// place; callers that reuse a population must reset it first.
func (s *Simulator) Run(patients []*models.Patient, params models.PolicyParams, rng *rand.Rand) (*models.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	pol := policy.New(params)

	if s.settings.NaiveInitialPanel {
		s.enrollNaivePanel(patients, rng)
	}

	years := make([]models.YearMetrics, 0, s.settings.NumYears+1)

	// Year 0 captures the pre-policy state
	baseline := make(map[int]float64, len(patients))
	for _, p := range patients {
		baseline[p.ID] = 0
	}
	years = append(years, metrics.ComputeYear(patients, 0, baseline, s.settings.Financial))

	total := 0.0
	for year := 1; year <= s.settings.NumYears; year++ {
		ym := s.runYear(patients, pol, year, rng)
		total += ym.Reward
		years = append(years, ym)
	}

	result := &models.SimulationResult{
		Years:       years,
		Policy:      params,
		TotalReward: total,
		Patients:    finalStates(patients),
	}
	return result, nil
}

// runYear applies the per-patient state machine in its fixed order:
// enroll, enrolled outcome deltas, spontaneous dropout, policy drops,
// unenrolled drift, metrics. Enrolled is the only state with outgoing
// transitions; dropped and never_enrolled are absorbing.
func (s *Simulator) runYear(patients []*models.Patient, pol *policy.Policy, year int, rng *rand.Rand) models.YearMetrics {
	deltas := make(map[int]float64, len(patients))

	// 1. Enrollment up to panel capacity
	enrolledCount := 0
	for _, p := range patients {
		if p.Status == models.StatusEnrolled {
			enrolledCount++
		}
	}
	for _, p := range patients {
		panelFull := enrolledCount >= s.settings.PanelCapacity
		if pol.ShouldEnroll(p.Observables(), panelFull) {
			p.Status = models.StatusEnrolled
			y := year
			p.YearEnrolled = &y
			enrolledCount++
		}
	}

	// 2. Outcome deltas for the enrolled panel
	for _, p := range patients {
		if p.Status == models.StatusEnrolled {
			d := s.env.OutcomeDelta(p, rng)
			p.CurrentOutcome += d
			deltas[p.ID] = d
		}
	}

	// 3. Spontaneous dropout
	for _, p := range patients {
		if p.Status == models.StatusEnrolled && s.env.SpontaneousDropout(p, rng) {
			s.drop(p, year)
		}
	}

	// 4. Policy drops on this year's delta
	for _, p := range patients {
		if p.Status == models.StatusEnrolled && pol.ShouldDrop(p.Observables(), deltas[p.ID]) {
			s.drop(p, year)
		}
	}

	// 5. Drift for patients outside the panel. Patients dropped earlier this
	// year already received their enrolled delta in step 2, so only those
	// without a delta drift here.
	for _, p := range patients {
		if _, done := deltas[p.ID]; done {
			continue
		}
		d := s.env.OutcomeDelta(p, rng)
		p.CurrentOutcome += d
		deltas[p.ID] = d
	}

	// 6. Score the year over the currently-enrolled set
	return metrics.ComputeYear(patients, year, deltas, s.settings.Financial)
}

func (s *Simulator) drop(p *models.Patient, year int) {
	p.Status = models.StatusDropped
	y := year
	p.YearDropped = &y
}

// enrollNaivePanel fills the panel with a random population-representative
// sample before the policy takes over, modeling an inherited panel
func (s *Simulator) enrollNaivePanel(patients []*models.Patient, rng *rand.Rand) {
	available := make([]*models.Patient, 0, len(patients))
	for _, p := range patients {
		if p.Status == models.StatusNeverEnrolled {
			available = append(available, p)
		}
	}
	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	n := s.settings.PanelCapacity
	if n > len(available) {
		n = len(available)
	}
	for _, p := range available[:n] {
		p.Status = models.StatusEnrolled
		y := 0
		p.YearEnrolled = &y
	}
}

func finalStates(patients []*models.Patient) []models.PatientOutcome {
	out := make([]models.PatientOutcome, 0, len(patients))
	for _, p := range patients {
		out = append(out, models.PatientOutcome{
			ID:             p.ID,
			Complexity:     p.Complexity,
			Status:         p.Status,
			InitialOutcome: p.InitialOutcome,
			FinalOutcome:   p.CurrentOutcome,
			YearEnrolled:   p.YearEnrolled,
			YearDropped:    p.YearDropped,
		})
	}
	return out
}
