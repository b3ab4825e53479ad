package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"panelsim/internal/config"
	exporthandlers "panelsim/internal/handlers/export"
	"panelsim/internal/handlers/simulation"
	httputil "panelsim/internal/http"
	"panelsim/internal/logging"
	"panelsim/internal/templates"
	"panelsim/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Init(false)
		logging.Log.WithError(err).Fatal("invalid configuration")
	}

	logging.Init(cfg.Debug)
	logging.WithFields(logrus.Fields{
		"addr":    cfg.ListenAddr,
		"version": version.Get().String(),
	}).Info("starting panel simulator")

	// Initialize template renderer
	renderer, err := templates.New(cfg.TemplatesDirectory, cfg.Debug)
	if err != nil {
		logging.Log.WithError(err).Warn("could not load templates")
		renderer = nil
	}

	// Initialize handlers
	store := simulation.NewStore()
	simulation.Initialize(cfg, renderer, store)
	exporthandlers.Initialize(store)

	r := newRouter(cfg)

	logging.Log.Infof("server listening on %s", cfg.ListenAddr)
	logging.Log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}

func newRouter(cfg *config.Config) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Static files
	fileServer := http.FileServer(http.Dir(cfg.StaticDirectory))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Routes
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/simulator", http.StatusTemporaryRedirect)
	})

	// Simulator routes
	r.Get("/simulator", simulation.HandleSimulatorPage)
	r.Get("/simulator/charts/data/{chartType}", simulation.HandleChartData)

	// API routes
	r.Get("/api/health", handleHealth)
	r.Post("/api/population/preview", simulation.HandlePopulationPreview)
	r.Post("/api/simulate", simulation.HandleSimulate)
	r.Post("/api/optimize", simulation.HandleOptimize)
	r.Post("/api/compare", simulation.HandleCompare)
	r.Post("/api/twopanel", simulation.HandleTwoPanel)

	// Export routes
	r.Get("/export/{runID}/metrics.csv", exporthandlers.HandleMetricsCSV)
	r.Post("/export/{runID}/archive", exporthandlers.HandleEncryptedArchive)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": version.Get(),
	})
}
