package report

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/atmos-data/windrose.report/internal/wind"
)

func sampleResult() *wind.Result {
	obs := make([]wind.Observation, 0, 200)
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		obs = append(obs, wind.Observation{
			Station:      "EST01",
			Timestamp:    start.Add(time.Duration(i) * time.Hour),
			DirectionDeg: float64(260 + i%20),
			SpeedMps:     4 + float64(i%7),
		})
	}
	return wind.Analyze(obs, wind.Options{})
}

func TestRenderReport(t *testing.T) {
	text := Render(sampleResult())

	for _, want := range []string{
		"WIND RESOURCE REPORT",
		"Station:      EST01",
		"Speed statistics",
		"Direction statistics",
		"Sector analysis (16 sectors)",
		"Dominant sector:",
		"Power density:",
		"Wind class:",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q\n%s", want, text)
		}
	}
}

func TestRenderReportInsufficientData(t *testing.T) {
	// A handful of observations in one sector: every other sector must be
	// reported without a fabricated fit.
	obs := []wind.Observation{}
	ts := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		obs = append(obs, wind.Observation{
			Station: "EST02", Timestamp: ts, DirectionDeg: 10, SpeedMps: 5,
		})
	}
	res := wind.Analyze(obs, wind.Options{})

	text := Render(res)
	if !strings.Contains(text, "insufficient data") {
		t.Errorf("report should mark under-sampled sectors:\n%s", text)
	}
}

func TestRenderEmptyResult(t *testing.T) {
	res := wind.Analyze(nil, wind.Options{})

	text := Render(res)
	if !strings.Contains(text, "(no data)") {
		t.Errorf("empty report should say so:\n%s", text)
	}
	if !strings.Contains(text, "NaN") {
		t.Errorf("empty statistics should render as NaN:\n%s", text)
	}
}

func TestRenderStats(t *testing.T) {
	res := sampleResult()
	text := RenderStats(res)

	for _, key := range []string{
		"station:", "total_rows:", "cleaned_rows:", "dropped_rows:",
		"speed_mean_mps:", "speed_min_mps:", "speed_max_mps:", "speed_stddev_mps:",
		"direction_circular_mean_deg:", "direction_circular_stddev_deg:",
		"sector_count:", "dominant_sector:", "air_density_kg_m3:",
		"power_density_w_m2:", "wind_class:",
	} {
		if !strings.Contains(text, key) {
			t.Errorf("stats output missing key %q\n%s", key, text)
		}
	}

	if strings.Contains(text, "%!") {
		t.Errorf("formatting directive leaked into stats output:\n%s", text)
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	res := sampleResult()

	artifacts, err := WriteArtifacts(dir, res, "20250601_120000")
	if err != nil {
		t.Fatalf("WriteArtifacts failed: %v", err)
	}

	if !strings.Contains(artifacts.Dir, "EST01") {
		t.Errorf("artifact dir %q should be namespaced by station", artifacts.Dir)
	}

	for _, path := range []string{artifacts.ReportPath, artifacts.StatsPath} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if len(data) == 0 {
			t.Errorf("artifact %s is empty", path)
		}
	}
}

func TestNumFormatting(t *testing.T) {
	if got := num(math.NaN()); got != "NaN" {
		t.Errorf("num(NaN) = %q", got)
	}
	if got := num(math.Inf(1)); got != "Inf" {
		t.Errorf("num(+Inf) = %q", got)
	}
	if got := num(3.14159); got != "3.14" {
		t.Errorf("num(3.14159) = %q", got)
	}
}
