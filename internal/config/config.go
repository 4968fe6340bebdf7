// Package config loads generator settings from defaults and an optional
// TOML or YAML file. Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/user/mysql-charts-go/internal/chart"
	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable setting.
type Config struct {
	OutputDir string   `toml:"output_dir" yaml:"output_dir"`
	DPI       int      `toml:"dpi" yaml:"dpi"`
	Format    string   `toml:"format" yaml:"format"`
	Palette   []string `toml:"palette" yaml:"palette"`
	WriteJSON bool     `toml:"json" yaml:"json"`
	// RepoPath is where git provenance is looked up. Empty disables it.
	RepoPath string `toml:"repo_path" yaml:"repo_path"`
}

// Default returns the settings that reproduce the stock chart set.
func Default() *Config {
	return &Config{
		OutputDir: "charts",
		DPI:       300,
		Format:    chart.FormatPNG,
		Palette:   append([]string(nil), chart.DefaultPalette...),
		RepoPath:  ".",
	}
}

// Load reads path over the defaults. The decoder is picked by extension:
// .toml, or .yaml/.yml. Keys missing from the file keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (want .toml, .yaml or .yml)", ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be > 0, got %d", c.DPI)
	}
	switch c.Format {
	case chart.FormatPNG, chart.FormatSVG, chart.FormatPDF:
	default:
		return fmt.Errorf("format must be one of png, svg, pdf; got %q", c.Format)
	}
	if _, err := chart.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}

// Style builds the chart style these settings describe.
func (c *Config) Style() (*chart.Style, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	st := chart.DefaultStyle()
	st.DPI = c.DPI
	st.Format = c.Format
	palette, err := chart.ParsePalette(c.Palette)
	if err != nil {
		return nil, err
	}
	st.Palette = palette
	return st, st.Validate()
}
