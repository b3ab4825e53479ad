package environment

import (
	"math/rand"
	"testing"

	"panelsim/internal/models"
)

func testPatient(complexity models.Complexity, status models.Status, engagement, literacy float64) *models.Patient {
	return &models.Patient{
		ID:              1,
		Complexity:      complexity,
		Status:          status,
		Engagement:      engagement,
		DigitalLiteracy: literacy,
	}
}

// TestOutcomeDeltaUnenrolled verifies unenrolled drift: easy patients stay
// roughly flat, complex patients only decline
func TestOutcomeDeltaUnenrolled(t *testing.T) {
	env := New(models.DefaultEnvParams())
	rng := rand.New(rand.NewSource(42))

	t.Run("easy drift is bounded", func(t *testing.T) {
		p := testPatient(models.ComplexityEasy, models.StatusNeverEnrolled, 0.5, 0.5)
		for i := 0; i < 1000; i++ {
			d := env.OutcomeDelta(p, rng)
			if d < -0.01 || d > 0.01 {
				t.Fatalf("easy unenrolled delta %v out of [-0.01, 0.01]", d)
			}
		}
	})

	t.Run("complex decline is bounded and non-positive", func(t *testing.T) {
		p := testPatient(models.ComplexityComplex, models.StatusNeverEnrolled, 0.5, 0.5)
		for i := 0; i < 1000; i++ {
			d := env.OutcomeDelta(p, rng)
			if d < -0.05 || d > 0 {
				t.Fatalf("complex unenrolled delta %v out of [-0.05, 0]", d)
			}
		}
	})

	t.Run("dropped patients drift the same as never enrolled", func(t *testing.T) {
		p := testPatient(models.ComplexityComplex, models.StatusDropped, 0.9, 0.9)
		for i := 0; i < 1000; i++ {
			d := env.OutcomeDelta(p, rng)
			if d > 0 {
				t.Fatalf("dropped complex patient improved by %v", d)
			}
		}
	})
}

// TestOutcomeDeltaEnrolled verifies the enrolled improvement model
func TestOutcomeDeltaEnrolled(t *testing.T) {
	env := New(models.DefaultEnvParams())

	t.Run("improvement rate tracks complexity", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		easy := testPatient(models.ComplexityEasy, models.StatusEnrolled, 0.5, 0.5)
		complexP := testPatient(models.ComplexityComplex, models.StatusEnrolled, 0.5, 0.5)

		const n = 5000
		easyImproved, complexImproved := 0, 0
		for i := 0; i < n; i++ {
			if env.OutcomeDelta(easy, rng) > 0.02 {
				easyImproved++
			}
			if env.OutcomeDelta(complexP, rng) > 0.02 {
				complexImproved++
			}
		}

		// Base rates are 0.6 vs 0.2 with neutral nudges
		easyRate := float64(easyImproved) / n
		complexRate := float64(complexImproved) / n
		if easyRate < 0.5 || easyRate > 0.7 {
			t.Errorf("easy improvement rate %.3f, want near 0.6", easyRate)
		}
		if complexRate < 0.12 || complexRate > 0.3 {
			t.Errorf("complex improvement rate %.3f, want near 0.2", complexRate)
		}
	})

	t.Run("engagement raises improvement probability", func(t *testing.T) {
		rng := rand.New(rand.NewSource(9))
		low := testPatient(models.ComplexityComplex, models.StatusEnrolled, 0.1, 0.5)
		high := testPatient(models.ComplexityComplex, models.StatusEnrolled, 0.9, 0.5)

		const n = 5000
		lowImproved, highImproved := 0, 0
		for i := 0; i < n; i++ {
			if env.OutcomeDelta(low, rng) > 0.02 {
				lowImproved++
			}
			if env.OutcomeDelta(high, rng) > 0.02 {
				highImproved++
			}
		}
		if highImproved <= lowImproved {
			t.Errorf("high engagement improved %d times vs %d for low; expected more", highImproved, lowImproved)
		}
	})

	t.Run("non-improvement jitter is bounded", func(t *testing.T) {
		rng := rand.New(rand.NewSource(3))
		p := testPatient(models.ComplexityComplex, models.StatusEnrolled, 0.0, 0.0)
		for i := 0; i < 2000; i++ {
			d := env.OutcomeDelta(p, rng)
			// With minimum engagement the realized improvement cap is
			// 0.08 * 0.8; jitter is within ±0.02
			if d < -0.02 || d > 0.08 {
				t.Fatalf("delta %v outside expected envelope", d)
			}
		}
	})

	t.Run("deterministic for fixed seed", func(t *testing.T) {
		p := testPatient(models.ComplexityEasy, models.StatusEnrolled, 0.7, 0.6)
		a := env.OutcomeDelta(p, rand.New(rand.NewSource(99)))
		b := env.OutcomeDelta(p, rand.New(rand.NewSource(99)))
		if a != b {
			t.Errorf("same seed gave %v and %v", a, b)
		}
	})
}

// TestSpontaneousDropout verifies the additive dropout risk model
func TestSpontaneousDropout(t *testing.T) {
	env := New(models.DefaultEnvParams())

	dropoutRate := func(p *models.Patient, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		const n = 10000
		dropped := 0
		for i := 0; i < n; i++ {
			if env.SpontaneousDropout(p, rng) {
				dropped++
			}
		}
		return float64(dropped) / n
	}

	t.Run("unenrolled patients never drop out", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for _, status := range []models.Status{models.StatusNeverEnrolled, models.StatusDropped} {
			p := testPatient(models.ComplexityComplex, status, 0.0, 0.0)
			for i := 0; i < 100; i++ {
				if env.SpontaneousDropout(p, rng) {
					t.Fatalf("patient in status %q dropped out", status)
				}
			}
		}
	})

	t.Run("baseline rate for an easy engaged patient", func(t *testing.T) {
		p := testPatient(models.ComplexityEasy, models.StatusEnrolled, 0.8, 0.8)
		rate := dropoutRate(p, 2)
		if rate < 0.03 || rate > 0.07 {
			t.Errorf("baseline dropout rate %.3f, want near 0.05", rate)
		}
	})

	t.Run("risk factors stack", func(t *testing.T) {
		// 0.05 base + 0.10 low engagement + 0.05 low literacy + 0.08 complex
		p := testPatient(models.ComplexityComplex, models.StatusEnrolled, 0.1, 0.1)
		rate := dropoutRate(p, 3)
		if rate < 0.24 || rate > 0.32 {
			t.Errorf("stacked dropout rate %.3f, want near 0.28", rate)
		}
	})

	t.Run("probability is capped", func(t *testing.T) {
		params := models.DefaultEnvParams()
		params.BaseDropoutRate = 0.9
		capped := New(params)
		p := testPatient(models.ComplexityComplex, models.StatusEnrolled, 0.1, 0.1)

		rng := rand.New(rand.NewSource(4))
		const n = 10000
		dropped := 0
		for i := 0; i < n; i++ {
			if capped.SpontaneousDropout(p, rng) {
				dropped++
			}
		}
		rate := float64(dropped) / n
		if rate > 0.63 {
			t.Errorf("dropout rate %.3f exceeds the 0.6 cap", rate)
		}
	})
}
