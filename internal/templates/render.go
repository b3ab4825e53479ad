package templates

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"panelsim/internal/logging"
)

// Renderer handles template rendering
type Renderer struct {
	templates *template.Template
	debug     bool
	baseDir   string
}

// New creates a new template renderer
func New(templateDir string, debug bool) (*Renderer, error) {
	r := &Renderer{
		debug:   debug,
		baseDir: templateDir,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

// getFuncMap returns the template function map
func getFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney":   formatMoney,
		"formatPercent": formatPercent,
		"formatNumber":  formatNumber,
		"toJSON":        jsonMarshal,
		"lower":         strings.ToLower,
		"upper":         strings.ToUpper,
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
	}
}

// loadTemplates parses all templates under layouts, pages and partials
func (r *Renderer) loadTemplates() error {
	tmpl := template.New("").Funcs(getFuncMap())

	var templateFiles []string
	for _, subdir := range []string{"layouts", "pages", "partials"} {
		matches, err := filepath.Glob(filepath.Join(r.baseDir, subdir, "*.html"))
		if err != nil {
			return fmt.Errorf("globbing %s templates: %w", subdir, err)
		}
		templateFiles = append(templateFiles, matches...)
	}

	if len(templateFiles) == 0 {
		return fmt.Errorf("no template files found in %s", r.baseDir)
	}

	for _, file := range templateFiles {
		if _, err := tmpl.ParseFiles(file); err != nil {
			return fmt.Errorf("parsing template %s: %w", file, err)
		}
	}

	r.templates = tmpl
	logging.Log.Infof("Templates loaded: %d files", len(templateFiles))
	return nil
}

// Render renders a full page template
func (r *Renderer) Render(w http.ResponseWriter, name string, data map[string]interface{}) {
	// Reload on every request in debug mode so edits show up immediately
	if r.debug {
		if err := r.loadTemplates(); err != nil {
			http.Error(w, "Template reload error: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		logging.Log.Errorf("Template render error (%s): %v", name, err)
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}

// RenderPartial renders a partial template fragment
func (r *Renderer) RenderPartial(w http.ResponseWriter, name string, data map[string]interface{}) {
	r.Render(w, name, data)
}

func formatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%.2f", sign, v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func jsonMarshal(v interface{}) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}
