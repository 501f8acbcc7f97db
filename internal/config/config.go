// Package config loads dashboard settings from a YAML file with
// DIVIDASH_* environment overrides layered on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds everything the dashboard needs before the first frame:
// input paths, the session location, and view tuning.
type Config struct {
	DataPath     string `koanf:"data_path" yaml:"data_path"`
	TopologyPath string `koanf:"topology_path" yaml:"topology_path"`
	SessionPath  string `koanf:"session_path" yaml:"session_path"`
	ExportDir    string `koanf:"export_dir" yaml:"export_dir"`

	// MultiMetrics caps the active multi-metric set shown by the
	// comparison and radar views.
	MultiMetrics int     `koanf:"multi_metrics" yaml:"multi_metrics"`
	MinZoom      float64 `koanf:"min_zoom" yaml:"min_zoom"`
	MaxZoom      float64 `koanf:"max_zoom" yaml:"max_zoom"`
}

func DefaultConfig() *Config {
	return &Config{
		DataPath:     "data/divide.csv",
		TopologyPath: "data/states.geojson",
		SessionPath:  "dividash-session.db",
		ExportDir:    ".",
		MultiMetrics: 5,
		MinZoom:      0.5,
		MaxZoom:      10,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DIVIDASH_*). A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("DIVIDASH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DIVIDASH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains workable values.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path is required")
	}
	if c.TopologyPath == "" {
		return fmt.Errorf("topology_path is required")
	}
	if c.SessionPath == "" {
		return fmt.Errorf("session_path is required")
	}
	if c.MultiMetrics < 2 {
		return fmt.Errorf("multi_metrics must be at least 2")
	}
	if c.MinZoom <= 0 || c.MaxZoom <= c.MinZoom {
		return fmt.Errorf("zoom bounds must satisfy 0 < min_zoom < max_zoom")
	}
	return nil
}
