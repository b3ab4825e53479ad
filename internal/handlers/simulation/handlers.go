package simulation

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"panelsim/internal/config"
	httputil "panelsim/internal/http"
	"panelsim/internal/logging"
	"panelsim/internal/models"
	"panelsim/internal/services/population"
	"panelsim/internal/services/simulator"
	"panelsim/internal/templates"
)

var (
	cfg      *config.Config
	renderer *templates.Renderer
	store    *Store
)

// Initialize sets up the simulation handlers with their dependencies
func Initialize(c *config.Config, r *templates.Renderer, s *Store) {
	cfg = c
	renderer = r
	store = s
}

// RunStore returns the shared result store
func RunStore() *Store {
	return store
}

// parseSettings decodes a JSON request body over a copy of the configured
// defaults, so requests only need to name the parameters they change
func parseSettings(r *http.Request) (models.SimSettings, error) {
	settings := cfg.Defaults
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			return settings, fmt.Errorf("invalid request body: %w", err)
		}
	}
	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// HandleSimulatorPage renders the interactive simulator page
func HandleSimulatorPage(w http.ResponseWriter, r *http.Request) {
	httputil.RenderTemplate(w, renderer, "base", map[string]interface{}{
		"Title":     "Panel Simulator",
		"ActiveTab": "simulator",
		"Defaults":  cfg.Defaults,
	})
}

// HandlePopulationPreview generates a population and returns its summary
// statistics without running any simulation years
func HandlePopulationPreview(w http.ResponseWriter, r *http.Request) {
	settings, err := parseSettings(r)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	rng := rand.New(rand.NewSource(settings.Seed))
	patients, err := population.Generate(settings.PopulationSize, settings.ComplexFraction, rng)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summarizePopulation(patients))
}

// HandleSimulate runs a single simulation under the requested settings
func HandleSimulate(w http.ResponseWriter, r *http.Request) {
	settings, err := parseSettings(r)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := simulator.RunSimulation(settings)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusInternalServerError)
		return
	}
	id := store.Put(result)

	logging.WithFields(logrus.Fields{
		"run_id":     id,
		"population": settings.PopulationSize,
		"years":      settings.NumYears,
		"seed":       settings.Seed,
	}).Info("simulation complete")

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleOptimize hill-climbs policy parameters and returns the best policy,
// its fitness trajectory and the final run under that policy
func HandleOptimize(w http.ResponseWriter, r *http.Request) {
	settings, err := parseSettings(r)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := simulator.RunOptimization(settings)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result.RunID = store.Put(result.Final)

	logging.WithFields(logrus.Fields{
		"run_id":      result.RunID,
		"iterations":  settings.OptimizerIterations,
		"best_reward": result.BestReward,
	}).Info("optimization complete")

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleCompare runs the same population with and without optimization
func HandleCompare(w http.ResponseWriter, r *http.Request) {
	settings, err := parseSettings(r)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := simulator.RunComparison(settings)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusInternalServerError)
		return
	}
	result.RunID = uuid.New().String()
	store.Put(result.Baseline)
	store.Put(result.Optimized.Final)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleTwoPanel simulates two organizations with different initial panel
// mixes over a shared population. Query parameters heavy_share and rep_share
// override the default 0.8/0.2 split.
func HandleTwoPanel(w http.ResponseWriter, r *http.Request) {
	settings, err := parseSettings(r)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}

	heavyShare := parseQueryFloat(r, "heavy_share", 0.8)
	repShare := parseQueryFloat(r, "rep_share", 0.2)

	result, err := simulator.RunTwoPanel(settings, heavyShare, repShare)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusBadRequest)
		return
	}
	result.RunID = uuid.New().String()
	store.Put(result.ComplexHeavy)
	store.Put(result.Representative)

	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleChartData serves per-chart JSON series for a stored run
func HandleChartData(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	result := store.Get(runID)
	if result == nil {
		httputil.ErrorJSON(w, "unknown run: "+runID, http.StatusNotFound)
		return
	}

	chartType := chi.URLParam(r, "chartType")
	data, err := chartSeries(result, chartType)
	if err != nil {
		httputil.ErrorJSON(w, err.Error(), http.StatusNotFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, data)
}

func parseQueryFloat(r *http.Request, key string, fallback float64) float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
