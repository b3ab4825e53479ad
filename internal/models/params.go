package models

import "fmt"

// PolicyParams are the four thresholds the enrollment policy decides with.
// They are immutable during a simulated year and replaced wholesale between
// optimization iterations.
type PolicyParams struct {
	MinEngagement      float64 `json:"min_engagement" yaml:"min_engagement"`
	MaxNumConditions   int     `json:"max_num_conditions" yaml:"max_num_conditions"`
	MinDigitalLiteracy float64 `json:"min_digital_literacy" yaml:"min_digital_literacy"`
	DropThresholdDelta float64 `json:"drop_threshold_delta" yaml:"drop_threshold_delta"`
}

// DefaultPolicyParams returns the baseline policy before any optimization
func DefaultPolicyParams() PolicyParams {
	return PolicyParams{
		MinEngagement:      0.3,
		MaxNumConditions:   5,
		MinDigitalLiteracy: 0.2,
		DropThresholdDelta: 0.02,
	}
}

// Validate checks that all thresholds are inside their valid domains
func (p PolicyParams) Validate() error {
	if p.MinEngagement < 0 || p.MinEngagement > 1 {
		return fmt.Errorf("min_engagement %.3f outside [0,1]", p.MinEngagement)
	}
	if p.MinDigitalLiteracy < 0 || p.MinDigitalLiteracy > 1 {
		return fmt.Errorf("min_digital_literacy %.3f outside [0,1]", p.MinDigitalLiteracy)
	}
	if p.MaxNumConditions < 0 {
		return fmt.Errorf("max_num_conditions %d is negative", p.MaxNumConditions)
	}
	if p.DropThresholdDelta < -1 || p.DropThresholdDelta > 1 {
		return fmt.Errorf("drop_threshold_delta %.3f outside [-1,1]", p.DropThresholdDelta)
	}
	return nil
}

// FinancialParams drive the yearly reward computation
type FinancialParams struct {
	PBPM           float64 `json:"pbpm" yaml:"pbpm"`                         // per-beneficiary-per-month payment
	BonusWeight    float64 `json:"bonus_weight" yaml:"bonus_weight"`         // scales average improvement bonus
	CostPerPatient float64 `json:"cost_per_patient" yaml:"cost_per_patient"` // annual cost to serve one enrollee
}

// DefaultFinancialParams returns the payment model defaults
func DefaultFinancialParams() FinancialParams {
	return FinancialParams{
		PBPM:           50,
		BonusWeight:    1000,
		CostPerPatient: 300,
	}
}

// Validate checks financial parameters for sane values
func (f FinancialParams) Validate() error {
	if f.PBPM < 0 {
		return fmt.Errorf("pbpm %.2f is negative", f.PBPM)
	}
	if f.CostPerPatient < 0 {
		return fmt.Errorf("cost_per_patient %.2f is negative", f.CostPerPatient)
	}
	return nil
}

// EnvParams control outcome transitions and spontaneous dropout. Defaults
// match the documented clinical-drift model.
type EnvParams struct {
	EasyImprovementProb    float64 `json:"easy_improvement_prob" yaml:"easy_improvement_prob"`
	ComplexImprovementProb float64 `json:"complex_improvement_prob" yaml:"complex_improvement_prob"`
	EasyImprovementMin     float64 `json:"easy_improvement_min" yaml:"easy_improvement_min"`
	EasyImprovementMax     float64 `json:"easy_improvement_max" yaml:"easy_improvement_max"`
	ComplexImprovementMin  float64 `json:"complex_improvement_min" yaml:"complex_improvement_min"`
	ComplexImprovementMax  float64 `json:"complex_improvement_max" yaml:"complex_improvement_max"`

	BaseDropoutRate      float64 `json:"base_dropout_rate" yaml:"base_dropout_rate"`
	LowEngagementDropout float64 `json:"low_engagement_dropout" yaml:"low_engagement_dropout"`
	LowLiteracyDropout   float64 `json:"low_literacy_dropout" yaml:"low_literacy_dropout"`
	ComplexDropout       float64 `json:"complex_dropout" yaml:"complex_dropout"`
	MaxDropoutProb       float64 `json:"max_dropout_prob" yaml:"max_dropout_prob"`
}

// DefaultEnvParams returns the standard improvement and dropout model
func DefaultEnvParams() EnvParams {
	return EnvParams{
		EasyImprovementProb:    0.6,
		ComplexImprovementProb: 0.2,
		EasyImprovementMin:     0.10,
		EasyImprovementMax:     0.20,
		ComplexImprovementMin:  0.02,
		ComplexImprovementMax:  0.08,
		BaseDropoutRate:        0.05,
		LowEngagementDropout:   0.10,
		LowLiteracyDropout:     0.05,
		ComplexDropout:         0.08,
		MaxDropoutProb:         0.6,
	}
}

// Validate checks probability parameters for valid ranges
func (e EnvParams) Validate() error {
	probs := map[string]float64{
		"easy_improvement_prob":    e.EasyImprovementProb,
		"complex_improvement_prob": e.ComplexImprovementProb,
		"base_dropout_rate":        e.BaseDropoutRate,
		"max_dropout_prob":         e.MaxDropoutProb,
	}
	for name, v := range probs {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %.3f outside [0,1]", name, v)
		}
	}
	if e.EasyImprovementMin > e.EasyImprovementMax {
		return fmt.Errorf("easy improvement range inverted: [%.3f,%.3f]", e.EasyImprovementMin, e.EasyImprovementMax)
	}
	if e.ComplexImprovementMin > e.ComplexImprovementMax {
		return fmt.Errorf("complex improvement range inverted: [%.3f,%.3f]", e.ComplexImprovementMin, e.ComplexImprovementMax)
	}
	return nil
}
