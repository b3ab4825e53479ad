package simulator

import (
	"fmt"
	"math/rand"

	"panelsim/internal/models"
	"panelsim/internal/services/optimizer"
	"panelsim/internal/services/population"
)

// RunSimulation generates a fresh population and simulates it with the
// settings' policy parameters. This is the plain entry point the serving
// layer calls when no optimization is requested.
func RunSimulation(settings models.SimSettings) (*models.SimulationResult, error) {
	sim, err := New(settings)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(settings.Seed))
	patients, err := population.Generate(settings.PopulationSize, settings.ComplexFraction, rng)
	if err != nil {
		return nil, err
	}

	return sim.Run(patients, settings.Policy, rand.New(rand.NewSource(settings.Seed)))
}

// RunOptimization hill-climbs from the settings' policy and returns the best
// policy found, its fitness trajectory, and a final simulation run under the
// best policy.
//
// By default every trial reuses one fixed-seed population with a full state
// reset between trials, so candidates are compared noise-free on identical
// patients. Setting OptimizerPopulations above 1 instead averages each
// candidate's fitness over that many fresh populations, trading comparability
// for robustness.
func RunOptimization(settings models.SimSettings) (*models.OptimizationResult, error) {
	sim, err := New(settings)
	if err != nil {
		return nil, err
	}

	basePop, err := population.Generate(settings.PopulationSize, settings.ComplexFraction,
		rand.New(rand.NewSource(settings.Seed)))
	if err != nil {
		return nil, err
	}

	evaluate := func(candidate models.PolicyParams) (float64, error) {
		if settings.OptimizerPopulations <= 1 {
			models.ResetAll(basePop)
			res, err := sim.Run(basePop, candidate, rand.New(rand.NewSource(settings.Seed)))
			if err != nil {
				return 0, err
			}
			return res.TotalReward, nil
		}

		total := 0.0
		for j := 0; j < settings.OptimizerPopulations; j++ {
			trialSeed := settings.Seed + int64(j)
			pop, err := population.Generate(settings.PopulationSize, settings.ComplexFraction,
				rand.New(rand.NewSource(trialSeed)))
			if err != nil {
				return 0, err
			}
			res, err := sim.Run(pop, candidate, rand.New(rand.NewSource(trialSeed)))
			if err != nil {
				return 0, err
			}
			total += res.TotalReward
		}
		return total / float64(settings.OptimizerPopulations), nil
	}

	mutationRng := rand.New(rand.NewSource(settings.Seed + 1))
	opt, err := optimizer.Optimize(settings.Policy, evaluate, settings.OptimizerIterations, mutationRng)
	if err != nil {
		return nil, fmt.Errorf("optimization failed: %w", err)
	}

	models.ResetAll(basePop)
	final, err := sim.Run(basePop, opt.Best, rand.New(rand.NewSource(settings.Seed)))
	if err != nil {
		return nil, err
	}

	return &models.OptimizationResult{
		BestPolicy: opt.Best,
		BestReward: opt.BestFitness,
		History:    opt.History,
		Final:      final,
	}, nil
}

// RunComparison runs the same seed and population twice: once with the
// settings' policy unchanged and once after optimization, so the two metric
// tables differ only by what the search learned.
func RunComparison(settings models.SimSettings) (*models.ComparisonResult, error) {
	baseline, err := RunSimulation(settings)
	if err != nil {
		return nil, err
	}

	optimized, err := RunOptimization(settings)
	if err != nil {
		return nil, err
	}

	return &models.ComparisonResult{Baseline: baseline, Optimized: optimized}, nil
}

// RunTwoPanel simulates two organizations over one shared population. One
// inherits a complex-heavy initial panel, the other a representative one;
// both then optimize their policies independently. The runs show both
// organizations converging on the same exclusion strategy regardless of
// starting mix.
func RunTwoPanel(settings models.SimSettings, complexHeavyShare, representativeShare float64) (*models.TwoPanelResult, error) {
	if complexHeavyShare < 0 || complexHeavyShare > 1 || representativeShare < 0 || representativeShare > 1 {
		return nil, fmt.Errorf("initial panel complex shares must be in [0,1], got %.2f and %.2f",
			complexHeavyShare, representativeShare)
	}

	// Initial panels are fixed by scenario setup, not built by the policy
	orgSettings := settings
	orgSettings.NaiveInitialPanel = false
	sim, err := New(orgSettings)
	if err != nil {
		return nil, err
	}

	basePop, err := population.Generate(settings.PopulationSize, settings.ComplexFraction,
		rand.New(rand.NewSource(settings.Seed)))
	if err != nil {
		return nil, err
	}

	runOrg := func(share float64, orgSeed int64) (*models.SimulationResult, models.PolicyParams, error) {
		evaluate := func(candidate models.PolicyParams) (float64, error) {
			models.ResetAll(basePop)
			enrollBiasedPanel(basePop, settings.PanelCapacity, share, rand.New(rand.NewSource(orgSeed)))
			res, err := sim.Run(basePop, candidate, rand.New(rand.NewSource(orgSeed)))
			if err != nil {
				return 0, err
			}
			return res.TotalReward, nil
		}

		opt, err := optimizer.Optimize(settings.Policy, evaluate, settings.OptimizerIterations,
			rand.New(rand.NewSource(orgSeed+1)))
		if err != nil {
			return nil, models.PolicyParams{}, err
		}

		models.ResetAll(basePop)
		enrollBiasedPanel(basePop, settings.PanelCapacity, share, rand.New(rand.NewSource(orgSeed)))
		res, err := sim.Run(basePop, opt.Best, rand.New(rand.NewSource(orgSeed)))
		if err != nil {
			return nil, models.PolicyParams{}, err
		}
		return res, opt.Best, nil
	}

	heavy, heavyPolicy, err := runOrg(complexHeavyShare, settings.Seed)
	if err != nil {
		return nil, fmt.Errorf("complex-heavy organization: %w", err)
	}
	rep, repPolicy, err := runOrg(representativeShare, settings.Seed+100)
	if err != nil {
		return nil, fmt.Errorf("representative organization: %w", err)
	}

	return &models.TwoPanelResult{
		ComplexHeavy:   heavy,
		Representative: rep,
		ComplexPolicy:  heavyPolicy,
		RepPolicy:      repPolicy,
	}, nil
}

// enrollBiasedPanel fills the initial panel with a specified complex share.
// This is scenario setup done by the simulation harness, which may read the
// hidden label; the policy being evaluated never does.
func enrollBiasedPanel(patients []*models.Patient, capacity int, complexShare float64, rng *rand.Rand) {
	var complexPatients, easyPatients []*models.Patient
	for _, p := range patients {
		if p.Status != models.StatusNeverEnrolled {
			continue
		}
		if p.Complexity == models.ComplexityComplex {
			complexPatients = append(complexPatients, p)
		} else {
			easyPatients = append(easyPatients, p)
		}
	}
	rng.Shuffle(len(complexPatients), func(i, j int) {
		complexPatients[i], complexPatients[j] = complexPatients[j], complexPatients[i]
	})
	rng.Shuffle(len(easyPatients), func(i, j int) {
		easyPatients[i], easyPatients[j] = easyPatients[j], easyPatients[i]
	})

	numComplex := int(float64(capacity) * complexShare)
	if numComplex > len(complexPatients) {
		numComplex = len(complexPatients)
	}
	numEasy := capacity - numComplex
	if numEasy > len(easyPatients) {
		numEasy = len(easyPatients)
	}

	year0 := 0
	for _, p := range complexPatients[:numComplex] {
		p.Status = models.StatusEnrolled
		y := year0
		p.YearEnrolled = &y
	}
	for _, p := range easyPatients[:numEasy] {
		p.Status = models.StatusEnrolled
		y := year0
		p.YearEnrolled = &y
	}
}
