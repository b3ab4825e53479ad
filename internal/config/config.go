package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"panelsim/internal/models"
)

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `yaml:"listen_addr"`
	Debug      bool   `yaml:"debug"`

	// Directories
	TemplatesDirectory string `yaml:"templates_directory"`
	StaticDirectory    string `yaml:"static_directory"`

	// Simulation defaults applied when a request omits a parameter
	Defaults models.SimSettings `yaml:"defaults"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		ListenAddr:         ":8080",
		Debug:              false,
		TemplatesDirectory: filepath.Join(wd, "web", "templates"),
		StaticDirectory:    filepath.Join(wd, "web", "static"),
		Defaults:           models.DefaultSimSettings(),
	}
}

// Load builds configuration from defaults, an optional YAML file named by
// SIM_CONFIG_FILE, then environment variable overrides. It fails fast on an
// unreadable file or invalid simulation defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("SIM_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if addr := os.Getenv("SIM_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if debug := os.Getenv("SIM_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	if templatesDir := os.Getenv("SIM_TEMPLATES_DIR"); templatesDir != "" {
		cfg.TemplatesDirectory = templatesDir
	}
	if staticDir := os.Getenv("SIM_STATIC_DIR"); staticDir != "" {
		cfg.StaticDirectory = staticDir
	}

	if err := cfg.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation defaults: %w", err)
	}

	return cfg, nil
}

// loadFile merges a YAML config file over the current values
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
