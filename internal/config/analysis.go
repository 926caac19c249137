// Package config loads analysis tuning parameters from JSON. Fields are
// pointers so partial config files are safe: anything omitted falls back to
// the defaults baked into the Get* accessors.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/atmos-data/windrose.report/internal/wind"
)

// DefaultConfigPath is the path to the canonical analysis defaults file,
// the single source of truth for default tuning values.
const DefaultConfigPath = "config/analysis.defaults.json"

// AnalysisConfig represents the tuning parameters for one analysis run.
type AnalysisConfig struct {
	// Binning and fitting
	SectorCount      *int     `json:"sector_count,omitempty"`
	MinSectorSamples *int     `json:"min_sector_samples,omitempty"`

	// Power estimation
	AirDensity *float64 `json:"air_density_kg_m3,omitempty"`

	// Rose rendering: upper edges of the speed color bands in m/s.
	// The last band is open-ended.
	SpeedBinEdges *[]float64 `json:"speed_bin_edges_mps,omitempty"`

	// Speeds at or below this threshold are reported as calm in the rose.
	CalmThreshold *float64 `json:"calm_threshold_mps,omitempty"`

	// Output
	OutputDir *string `json:"output_dir,omitempty"`
}

// EmptyAnalysisConfig returns a config with every field unset.
// Use LoadAnalysisConfig to load actual values from a defaults file.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file. The file must
// have a .json extension and stay under the size cap. Omitted fields keep
// their accessor defaults, so partial configs are safe.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *AnalysisConfig) Validate() error {
	if c.SectorCount != nil {
		if *c.SectorCount < 4 || *c.SectorCount > 360 {
			return fmt.Errorf("sector_count must be between 4 and 360, got %d", *c.SectorCount)
		}
	}
	if c.MinSectorSamples != nil && *c.MinSectorSamples < 1 {
		return fmt.Errorf("min_sector_samples must be positive, got %d", *c.MinSectorSamples)
	}
	if c.AirDensity != nil && *c.AirDensity <= 0 {
		return fmt.Errorf("air_density_kg_m3 must be positive, got %f", *c.AirDensity)
	}
	if c.CalmThreshold != nil && *c.CalmThreshold < 0 {
		return fmt.Errorf("calm_threshold_mps must be non-negative, got %f", *c.CalmThreshold)
	}
	if c.SpeedBinEdges != nil {
		edges := *c.SpeedBinEdges
		if len(edges) == 0 {
			return fmt.Errorf("speed_bin_edges_mps must not be empty when set")
		}
		if !sort.Float64sAreSorted(edges) {
			return fmt.Errorf("speed_bin_edges_mps must be ascending")
		}
		if edges[0] <= 0 {
			return fmt.Errorf("speed_bin_edges_mps must start above zero, got %f", edges[0])
		}
	}
	return nil
}

// GetSectorCount returns the sector_count value or the default.
func (c *AnalysisConfig) GetSectorCount() int {
	if c.SectorCount == nil {
		return wind.DefaultSectorCount
	}
	return *c.SectorCount
}

// GetMinSectorSamples returns the min_sector_samples value or the default.
func (c *AnalysisConfig) GetMinSectorSamples() int {
	if c.MinSectorSamples == nil {
		return wind.DefaultMinSectorSamples
	}
	return *c.MinSectorSamples
}

// GetAirDensity returns the air_density_kg_m3 value or the default.
func (c *AnalysisConfig) GetAirDensity() float64 {
	if c.AirDensity == nil {
		return wind.DefaultAirDensity
	}
	return *c.AirDensity
}

// GetSpeedBinEdges returns the rose speed band edges or the default bands.
func (c *AnalysisConfig) GetSpeedBinEdges() []float64 {
	if c.SpeedBinEdges == nil {
		return []float64{2, 4, 6, 8, 10}
	}
	return *c.SpeedBinEdges
}

// GetCalmThreshold returns the calm_threshold_mps value or the default.
func (c *AnalysisConfig) GetCalmThreshold() float64 {
	if c.CalmThreshold == nil {
		return 0.5
	}
	return *c.CalmThreshold
}

// GetOutputDir returns the output_dir value or the default.
func (c *AnalysisConfig) GetOutputDir() string {
	if c.OutputDir == nil || *c.OutputDir == "" {
		return "output"
	}
	return *c.OutputDir
}

// Options converts the config into pipeline options.
func (c *AnalysisConfig) Options() wind.Options {
	return wind.Options{
		SectorCount:      c.GetSectorCount(),
		MinSectorSamples: c.GetMinSectorSamples(),
		AirDensity:       c.GetAirDensity(),
	}
}
