// Package wind implements the analytical core of windrose.report: observation
// cleaning, descriptive and circular statistics, directional sector binning,
// per-sector Weibull fitting, and theoretical wind power density estimation.
//
// Everything here is a pure transformation over in-memory slices. One call to
// Analyze runs the whole pipeline; nothing is cached or shared between runs.
package wind

import "time"

// Observation is a single cleaned (or cleanable) wind record.
type Observation struct {
	Station      string     `json:"station"`
	Timestamp    time.Time  `json:"timestamp"`
	DirectionDeg float64    `json:"direction_deg"` // [0,360) after cleaning
	SpeedMps     float64    `json:"speed_mps"`     // >= 0 after cleaning
	HeightM      *float64   `json:"height_m,omitempty"`
}

// DropStats counts rows rejected during cleaning, keyed by reason.
type DropStats struct {
	MissingField     int `json:"missing_field"`
	InvalidDirection int `json:"invalid_direction"`
	InvalidSpeed     int `json:"invalid_speed"`
	BadTimestamp     int `json:"bad_timestamp"`
}

// Total returns the number of dropped rows across all reasons.
func (d DropStats) Total() int {
	return d.MissingField + d.InvalidDirection + d.InvalidSpeed + d.BadTimestamp
}

// Add merges another DropStats into this one.
func (d *DropStats) Add(o DropStats) {
	d.MissingField += o.MissingField
	d.InvalidDirection += o.InvalidDirection
	d.InvalidSpeed += o.InvalidSpeed
	d.BadTimestamp += o.BadTimestamp
}

// WeibullFit holds the two fitted Weibull parameters for a sector's speeds.
type WeibullFit struct {
	Shape float64 `json:"shape_k"` // k > 0
	Scale float64 `json:"scale_c"` // c > 0, m/s
}

// SectorSummary is the per-sector slice of an analysis result.
type SectorSummary struct {
	Index     int     `json:"index"`
	Label     string  `json:"label"`     // compass label for 16 sectors, "S07" otherwise
	LowDeg    float64 `json:"low_deg"`   // inclusive
	HighDeg   float64 `json:"high_deg"`  // exclusive
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"` // fraction of all cleaned observations

	MeanSpeedMps float64 `json:"mean_speed_mps"` // NaN when Count == 0

	// Fit is nil when the sector had too few positive speeds or the
	// estimator did not converge; FitErr carries the reason.
	Fit    *WeibullFit `json:"fit,omitempty"`
	FitErr string      `json:"fit_err,omitempty"`

	// Empirical power density from the sector's observed speeds, and the
	// analytic value from the fit when one exists (NaN otherwise).
	PowerDensityWm2        float64 `json:"power_density_w_m2"`
	WeibullPowerDensityWm2 float64 `json:"weibull_power_density_w_m2"`
}

// Result is the complete output of one analysis run.
type Result struct {
	Station    string    `json:"station"`
	PeriodFrom time.Time `json:"period_from"`
	PeriodTo   time.Time `json:"period_to"`

	TotalRows   int       `json:"total_rows"`   // rows seen before cleaning
	CleanedRows int       `json:"cleaned_rows"` // rows surviving cleaning
	Dropped     DropStats `json:"dropped"`

	Speed     SpeedStats     `json:"speed"`
	Direction DirectionStats `json:"direction"`

	SectorCount    int             `json:"sector_count"`
	Sectors        []SectorSummary `json:"sectors"`
	DominantSector int             `json:"dominant_sector"` // -1 when no data

	AirDensity      float64 `json:"air_density_kg_m3"`
	PowerDensityWm2 float64 `json:"power_density_w_m2"` // aggregate, empirical
	WindClass       string  `json:"wind_class"`
}
