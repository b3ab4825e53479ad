package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies baseline values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.Defaults.PopulationSize != 1000 {
		t.Errorf("default population = %d, want 1000", cfg.Defaults.PopulationSize)
	}
	if err := cfg.Defaults.Validate(); err != nil {
		t.Errorf("default simulation settings invalid: %v", err)
	}
}

// TestLoadEnvOverrides verifies environment variables win over defaults
func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SIM_LISTEN_ADDR", ":9999")
	t.Setenv("SIM_DEBUG", "true")
	t.Setenv("SIM_TEMPLATES_DIR", "/tmp/tpl")
	t.Setenv("SIM_STATIC_DIR", "/tmp/static")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.TemplatesDirectory != "/tmp/tpl" {
		t.Errorf("TemplatesDirectory = %q", cfg.TemplatesDirectory)
	}
	if cfg.StaticDirectory != "/tmp/static" {
		t.Errorf("StaticDirectory = %q", cfg.StaticDirectory)
	}
}

// TestLoadConfigFile verifies YAML file values merge over defaults and env
// vars still win afterwards
func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
listen_addr: ":7070"
defaults:
  population_size: 250
  num_years: 3
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("SIM_CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want :7070", cfg.ListenAddr)
	}
	if cfg.Defaults.PopulationSize != 250 {
		t.Errorf("population = %d, want 250", cfg.Defaults.PopulationSize)
	}
	if cfg.Defaults.NumYears != 3 {
		t.Errorf("years = %d, want 3", cfg.Defaults.NumYears)
	}
	// Untouched defaults survive the merge
	if cfg.Defaults.PanelCapacity != 400 {
		t.Errorf("capacity = %d, want untouched default 400", cfg.Defaults.PanelCapacity)
	}

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("SIM_LISTEN_ADDR", ":6060")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.ListenAddr != ":6060" {
			t.Errorf("ListenAddr = %q, want :6060", cfg.ListenAddr)
		}
	})
}

// TestLoadErrors verifies fail-fast behavior
func TestLoadErrors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("SIM_CONFIG_FILE", "/nonexistent/config.yaml")
		if _, err := Load(); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("invalid simulation defaults", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("defaults:\n  population_size: -5\n"), 0600); err != nil {
			t.Fatalf("writing config file: %v", err)
		}
		t.Setenv("SIM_CONFIG_FILE", path)
		if _, err := Load(); err == nil {
			t.Error("expected error for invalid defaults")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("listen_addr: [unclosed"), 0600); err != nil {
			t.Fatalf("writing config file: %v", err)
		}
		t.Setenv("SIM_CONFIG_FILE", path)
		if _, err := Load(); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
