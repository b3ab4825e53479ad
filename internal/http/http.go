package http

import (
	"encoding/json"
	"net/http"

	"panelsim/internal/logging"
	"panelsim/internal/templates"
)

// RenderTemplate renders a full page template, with a plain HTML fallback
// when templates are not available
func RenderTemplate(w http.ResponseWriter, renderer *templates.Renderer, templateName string, data map[string]interface{}) {
	if renderer != nil {
		renderer.Render(w, templateName, data)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte("<html><body><h1>" + templateName + "</h1><p>Templates not loaded. Check configuration.</p></body></html>"))
}

// WriteJSON encodes v as a JSON response
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Log.Errorf("Error encoding JSON response: %v", err)
	}
}

// ErrorJSON sends a JSON error response
func ErrorJSON(w http.ResponseWriter, message string, status int) {
	logging.Log.Warnf("Request error: %s (status %d)", message, status)
	WriteJSON(w, status, map[string]string{"error": message})
}
