package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"panelsim/internal/handlers/simulation"
	httputil "panelsim/internal/http"
	"panelsim/internal/logging"
	"panelsim/internal/services/export"
)

var store *simulation.Store

// Initialize sets up the export handlers with the shared run store
func Initialize(s *simulation.Store) {
	store = s
}

// HandleMetricsCSV serves a stored run's per-year metrics table as a CSV
// download
func HandleMetricsCSV(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	result := store.Get(runID)
	if result == nil {
		httputil.ErrorJSON(w, "unknown run: "+runID, http.StatusNotFound)
		return
	}

	filename := fmt.Sprintf("panel_metrics_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := export.WriteMetricsCSV(w, result.Years); err != nil {
		// Headers are already out; log and stop
		logging.Log.Errorf("Error writing metrics CSV for run %s: %v", runID, err)
	}
}

// HandleEncryptedArchive serves a stored run's full result (metrics and
// final patient states) as an age-encrypted JSON archive. The passphrase
// comes from the request form and is never stored.
func HandleEncryptedArchive(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	result := store.Get(runID)
	if result == nil {
		httputil.ErrorJSON(w, "unknown run: "+runID, http.StatusNotFound)
		return
	}

	passphrase := r.FormValue("passphrase")
	if passphrase == "" {
		httputil.ErrorJSON(w, "passphrase is required", http.StatusBadRequest)
		return
	}

	plain, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		httputil.ErrorJSON(w, "encoding result: "+err.Error(), http.StatusInternalServerError)
		return
	}

	encrypted, err := export.Encrypt(plain, passphrase)
	if err != nil {
		httputil.ErrorJSON(w, "encrypting archive: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("panel_run_%s.json.age", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	http.ServeContent(w, r, filename, time.Now(), bytes.NewReader(encrypted))
}
