// Package report renders analysis results as a technical text report and a
// fixed-key statistics file. Rendering is a boundary concern: nothing here
// feeds back into the pipeline.
package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/atmos-data/windrose.report/internal/wind"
)

// Render formats the full technical report for an analysis result.
func Render(r *wind.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "WIND RESOURCE REPORT\n")
	fmt.Fprintf(&b, "====================\n\n")
	fmt.Fprintf(&b, "Station:      %s\n", orDash(r.Station))
	if !r.PeriodFrom.IsZero() {
		fmt.Fprintf(&b, "Period:       %s to %s\n",
			r.PeriodFrom.Format("2006-01-02 15:04"), r.PeriodTo.Format("2006-01-02 15:04"))
	} else {
		fmt.Fprintf(&b, "Period:       (no data)\n")
	}
	fmt.Fprintf(&b, "Observations: %d (%d dropped of %d raw rows)\n\n",
		r.CleanedRows, r.Dropped.Total(), r.TotalRows)

	fmt.Fprintf(&b, "Speed statistics (m/s)\n")
	fmt.Fprintf(&b, "  mean:   %s\n", num(r.Speed.Mean))
	fmt.Fprintf(&b, "  min:    %s\n", num(r.Speed.Min))
	fmt.Fprintf(&b, "  max:    %s\n", num(r.Speed.Max))
	fmt.Fprintf(&b, "  stddev: %s\n\n", num(r.Speed.StdDev))

	fmt.Fprintf(&b, "Direction statistics (degrees)\n")
	fmt.Fprintf(&b, "  circular mean:   %s\n", num(r.Direction.CircularMean))
	fmt.Fprintf(&b, "  circular stddev: %s\n", num(r.Direction.CircularStdDev))
	fmt.Fprintf(&b, "  resultant:       %s\n\n", num(r.Direction.Resultant))

	fmt.Fprintf(&b, "Sector analysis (%d sectors)\n", r.SectorCount)
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  sector\trange\tcount\tfreq\tmean\tk\tc\tpower (W/m2)")
	for _, s := range r.Sectors {
		k, c := "-", "-"
		if s.Fit != nil {
			k = fmt.Sprintf("%.2f", s.Fit.Shape)
			c = fmt.Sprintf("%.2f", s.Fit.Scale)
		} else if s.FitErr != "" && s.Count > 0 {
			k = "insufficient data"
			c = ""
		}
		fmt.Fprintf(tw, "  %s\t[%g, %g)\t%d\t%.1f%%\t%s\t%s\t%s\t%s\n",
			s.Label, s.LowDeg, s.HighDeg, s.Count, s.Frequency*100,
			num(s.MeanSpeedMps), k, c, num(s.PowerDensityWm2))
	}
	tw.Flush()
	b.WriteString("\n")

	if r.DominantSector >= 0 {
		dom := r.Sectors[r.DominantSector]
		fmt.Fprintf(&b, "Dominant sector: %s [%g, %g) with %.1f%% of observations\n",
			dom.Label, dom.LowDeg, dom.HighDeg, dom.Frequency*100)
	} else {
		fmt.Fprintf(&b, "Dominant sector: (no data)\n")
	}
	fmt.Fprintf(&b, "Air density:     %.3f kg/m3\n", r.AirDensity)
	fmt.Fprintf(&b, "Power density:   %s W/m2\n", num(r.PowerDensityWm2))
	fmt.Fprintf(&b, "Wind class:      %s\n", r.WindClass)

	return b.String()
}

// RenderStats formats the fixed-key statistics file, one "name: value" line
// per statistic.
func RenderStats(r *wind.Result) string {
	var b strings.Builder
	write := func(key string, value string) {
		fmt.Fprintf(&b, "%s: %s\n", key, value)
	}

	write("station", orDash(r.Station))
	write("total_rows", fmt.Sprintf("%d", r.TotalRows))
	write("cleaned_rows", fmt.Sprintf("%d", r.CleanedRows))
	write("dropped_rows", fmt.Sprintf("%d", r.Dropped.Total()))
	write("speed_mean_mps", num(r.Speed.Mean))
	write("speed_min_mps", num(r.Speed.Min))
	write("speed_max_mps", num(r.Speed.Max))
	write("speed_stddev_mps", num(r.Speed.StdDev))
	write("direction_circular_mean_deg", num(r.Direction.CircularMean))
	write("direction_circular_stddev_deg", num(r.Direction.CircularStdDev))
	write("sector_count", fmt.Sprintf("%d", r.SectorCount))
	if r.DominantSector >= 0 {
		write("dominant_sector", r.Sectors[r.DominantSector].Label)
	} else {
		write("dominant_sector", "-")
	}
	write("air_density_kg_m3", fmt.Sprintf("%.3f", r.AirDensity))
	write("power_density_w_m2", num(r.PowerDensityWm2))
	write("wind_class", r.WindClass)

	return b.String()
}

// Artifacts is the set of files one analysis run writes.
type Artifacts struct {
	Dir        string
	ReportPath string
	StatsPath  string
}

// WriteArtifacts writes the report and stats files under
// <outDir>/<station>/<runID>/ and returns their locations.
func WriteArtifacts(outDir string, r *wind.Result, runID string) (*Artifacts, error) {
	station := r.Station
	if station == "" {
		station = "unknown"
	}
	if runID == "" {
		runID = wind.RunTimestamp(time.Now())
	}

	dir := filepath.Join(outDir, station, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	a := &Artifacts{
		Dir:        dir,
		ReportPath: filepath.Join(dir, "report.txt"),
		StatsPath:  filepath.Join(dir, "stats.txt"),
	}

	if err := os.WriteFile(a.ReportPath, []byte(Render(r)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.WriteFile(a.StatsPath, []byte(RenderStats(r)), 0644); err != nil {
		return nil, fmt.Errorf("failed to write stats: %w", err)
	}

	return a, nil
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 0) {
		return "Inf"
	}
	return fmt.Sprintf("%.2f", v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
