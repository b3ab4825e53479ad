package models

import "testing"

// TestSimSettingsValidate exercises the fail-fast validation paths
func TestSimSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SimSettings)
		wantErr bool
	}{
		{"defaults are valid", func(s *SimSettings) {}, false},
		{"zero population", func(s *SimSettings) { s.PopulationSize = 0 }, true},
		{"negative population", func(s *SimSettings) { s.PopulationSize = -10 }, true},
		{"fraction above one", func(s *SimSettings) { s.ComplexFraction = 1.2 }, true},
		{"negative fraction", func(s *SimSettings) { s.ComplexFraction = -0.1 }, true},
		{"zero capacity", func(s *SimSettings) { s.PanelCapacity = 0 }, true},
		{"zero years", func(s *SimSettings) { s.NumYears = 0 }, true},
		{"negative iterations", func(s *SimSettings) { s.OptimizerIterations = -1 }, true},
		{"zero iterations allowed", func(s *SimSettings) { s.OptimizerIterations = 0 }, false},
		{"zero populations", func(s *SimSettings) { s.OptimizerPopulations = 0 }, true},
		{"bad policy engagement", func(s *SimSettings) { s.Policy.MinEngagement = 1.5 }, true},
		{"bad policy conditions", func(s *SimSettings) { s.Policy.MaxNumConditions = -1 }, true},
		{"negative pbpm", func(s *SimSettings) { s.Financial.PBPM = -1 }, true},
		{"bad improvement prob", func(s *SimSettings) { s.Env.EasyImprovementProb = 1.5 }, true},
		{"inverted improvement range", func(s *SimSettings) {
			s.Env.EasyImprovementMin = 0.3
			s.Env.EasyImprovementMax = 0.1
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSimSettings()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestPolicyParamsValidate verifies threshold domain checks
func TestPolicyParamsValidate(t *testing.T) {
	if err := DefaultPolicyParams().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}

	bad := DefaultPolicyParams()
	bad.DropThresholdDelta = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for drop threshold above 1")
	}

	bad = DefaultPolicyParams()
	bad.MinDigitalLiteracy = -0.2
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative literacy threshold")
	}
}
