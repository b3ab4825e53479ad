package models

import "fmt"

// SimSettings contains every knob for one simulation run. Defaults come from
// DefaultSimSettings; the server and CLI override individual fields from
// request parameters or flags.
type SimSettings struct {
	PopulationSize  int     `json:"population_size" yaml:"population_size"`
	ComplexFraction float64 `json:"complex_fraction" yaml:"complex_fraction"`
	PanelCapacity   int     `json:"panel_capacity" yaml:"panel_capacity"`
	NumYears        int     `json:"num_years" yaml:"num_years"`
	Seed            int64   `json:"seed" yaml:"seed"`

	// NaiveInitialPanel enrolls a random population-representative panel up
	// to capacity before year 1, modeling an organization that built its
	// panel before the policy took over.
	NaiveInitialPanel bool `json:"naive_initial_panel" yaml:"naive_initial_panel"`

	// OptimizerIterations is the hill-climbing budget when optimization is
	// requested
	OptimizerIterations int `json:"optimizer_iterations" yaml:"optimizer_iterations"`

	// OptimizerPopulations >1 averages candidate fitness over that many
	// fresh populations instead of reusing one fixed-seed population
	OptimizerPopulations int `json:"optimizer_populations" yaml:"optimizer_populations"`

	Policy    PolicyParams    `json:"policy" yaml:"policy"`
	Financial FinancialParams `json:"financial" yaml:"financial"`
	Env       EnvParams       `json:"env" yaml:"env"`
}

// DefaultSimSettings returns a runnable baseline configuration
func DefaultSimSettings() SimSettings {
	return SimSettings{
		PopulationSize:       1000,
		ComplexFraction:      0.40,
		PanelCapacity:        400,
		NumYears:             10,
		Seed:                 42,
		NaiveInitialPanel:    false,
		OptimizerIterations:  50,
		OptimizerPopulations: 1,
		Policy:               DefaultPolicyParams(),
		Financial:            DefaultFinancialParams(),
		Env:                  DefaultEnvParams(),
	}
}

// Validate fails fast on configurations that would make a run meaningless.
// No partial run is attempted after a validation error.
func (s SimSettings) Validate() error {
	if s.PopulationSize <= 0 {
		return fmt.Errorf("population_size must be positive, got %d", s.PopulationSize)
	}
	if s.ComplexFraction < 0 || s.ComplexFraction > 1 {
		return fmt.Errorf("complex_fraction %.3f outside [0,1]", s.ComplexFraction)
	}
	if s.PanelCapacity <= 0 {
		return fmt.Errorf("panel_capacity must be positive, got %d", s.PanelCapacity)
	}
	if s.NumYears <= 0 {
		return fmt.Errorf("num_years must be positive, got %d", s.NumYears)
	}
	if s.OptimizerIterations < 0 {
		return fmt.Errorf("optimizer_iterations must be non-negative, got %d", s.OptimizerIterations)
	}
	if s.OptimizerPopulations < 1 {
		return fmt.Errorf("optimizer_populations must be at least 1, got %d", s.OptimizerPopulations)
	}
	if err := s.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	if err := s.Financial.Validate(); err != nil {
		return fmt.Errorf("financial: %w", err)
	}
	if err := s.Env.Validate(); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return nil
}
