package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	cfg := EmptyAnalysisConfig()

	if got := cfg.GetSectorCount(); got != 16 {
		t.Errorf("GetSectorCount() = %d, want 16", got)
	}
	if got := cfg.GetMinSectorSamples(); got != 10 {
		t.Errorf("GetMinSectorSamples() = %d, want 10", got)
	}
	if got := cfg.GetAirDensity(); got != 1.225 {
		t.Errorf("GetAirDensity() = %v, want 1.225", got)
	}
	if got := cfg.GetCalmThreshold(); got != 0.5 {
		t.Errorf("GetCalmThreshold() = %v, want 0.5", got)
	}
	if got := cfg.GetOutputDir(); got != "output" {
		t.Errorf("GetOutputDir() = %q, want %q", got, "output")
	}
	edges := cfg.GetSpeedBinEdges()
	if len(edges) != 5 || edges[0] != 2 || edges[4] != 10 {
		t.Errorf("GetSpeedBinEdges() = %v", edges)
	}
}

func TestLoadAnalysisConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"sector_count": 8,
		"air_density_kg_m3": 1.1,
		"speed_bin_edges_mps": [3, 6, 9],
		"output_dir": "reports"
	}`)

	cfg, err := LoadAnalysisConfig(path)
	if err != nil {
		t.Fatalf("LoadAnalysisConfig failed: %v", err)
	}

	if got := cfg.GetSectorCount(); got != 8 {
		t.Errorf("GetSectorCount() = %d, want 8", got)
	}
	if got := cfg.GetAirDensity(); got != 1.1 {
		t.Errorf("GetAirDensity() = %v, want 1.1", got)
	}
	if got := cfg.GetOutputDir(); got != "reports" {
		t.Errorf("GetOutputDir() = %q, want %q", got, "reports")
	}
	if edges := cfg.GetSpeedBinEdges(); len(edges) != 3 || edges[2] != 9 {
		t.Errorf("GetSpeedBinEdges() = %v", edges)
	}

	// Omitted fields keep their defaults.
	if got := cfg.GetMinSectorSamples(); got != 10 {
		t.Errorf("GetMinSectorSamples() = %d, want default 10", got)
	}
}

func TestLoadAnalysisConfigDefaultsFile(t *testing.T) {
	// The shipped defaults file must parse and validate.
	cfg, err := LoadAnalysisConfig("../../" + DefaultConfigPath)
	if err != nil {
		t.Fatalf("failed to load shipped defaults: %v", err)
	}
	if got := cfg.GetSectorCount(); got != 16 {
		t.Errorf("shipped defaults sector_count = %d, want 16", got)
	}
}

func TestLoadAnalysisConfigRejectsBadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := LoadAnalysisConfig(path); err == nil {
		t.Fatal("expected error for non-JSON extension")
	}
}

func TestLoadAnalysisConfigMissingFile(t *testing.T) {
	if _, err := LoadAnalysisConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejections(t *testing.T) {
	intp := func(v int) *int { return &v }
	floatp := func(v float64) *float64 { return &v }
	edgesp := func(v []float64) *[]float64 { return &v }

	cases := []struct {
		name string
		cfg  AnalysisConfig
	}{
		{"sector count too low", AnalysisConfig{SectorCount: intp(3)}},
		{"sector count too high", AnalysisConfig{SectorCount: intp(361)}},
		{"zero min samples", AnalysisConfig{MinSectorSamples: intp(0)}},
		{"non-positive air density", AnalysisConfig{AirDensity: floatp(0)}},
		{"negative calm threshold", AnalysisConfig{CalmThreshold: floatp(-0.1)}},
		{"empty bin edges", AnalysisConfig{SpeedBinEdges: edgesp([]float64{})}},
		{"unsorted bin edges", AnalysisConfig{SpeedBinEdges: edgesp([]float64{4, 2, 6})}},
		{"zero first edge", AnalysisConfig{SpeedBinEdges: edgesp([]float64{0, 2})}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOptions(t *testing.T) {
	count := 12
	density := 1.0
	cfg := &AnalysisConfig{SectorCount: &count, AirDensity: &density}

	opts := cfg.Options()
	if opts.SectorCount != 12 {
		t.Errorf("Options().SectorCount = %d, want 12", opts.SectorCount)
	}
	if opts.AirDensity != 1.0 {
		t.Errorf("Options().AirDensity = %v, want 1.0", opts.AirDensity)
	}
	if opts.MinSectorSamples != 10 {
		t.Errorf("Options().MinSectorSamples = %d, want 10", opts.MinSectorSamples)
	}
}
