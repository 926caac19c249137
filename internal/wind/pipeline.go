package wind

import (
	"math"
	"time"

	"github.com/atmos-data/windrose.report/internal/monitoring"
)

// Options tunes a single analysis run. Zero values select the defaults.
type Options struct {
	SectorCount      int     // default DefaultSectorCount
	MinSectorSamples int     // default DefaultMinSectorSamples
	AirDensity       float64 // default DefaultAirDensity
}

func (o Options) withDefaults() Options {
	if o.SectorCount <= 0 {
		o.SectorCount = DefaultSectorCount
	}
	if o.MinSectorSamples <= 0 {
		o.MinSectorSamples = DefaultMinSectorSamples
	}
	if o.AirDensity <= 0 {
		o.AirDensity = DefaultAirDensity
	}
	return o
}

// Analyze runs the whole pipeline over a raw observation batch: clean,
// descriptive statistics, sector binning, per-sector Weibull fits, and power
// density estimation. Per-row and per-sector failures are recorded in the
// result and never abort the run.
func Analyze(obs []Observation, opts Options) *Result {
	opts = opts.withDefaults()

	cleaned, drops := Clean(obs)
	if drops.Total() > 0 {
		monitoring.Logf("cleaning dropped %d of %d rows (missing=%d direction=%d speed=%d timestamp=%d)",
			drops.Total(), len(obs), drops.MissingField, drops.InvalidDirection, drops.InvalidSpeed, drops.BadTimestamp)
	}

	res := &Result{
		TotalRows:      len(obs),
		CleanedRows:    len(cleaned),
		Dropped:        drops,
		SectorCount:    opts.SectorCount,
		DominantSector: -1,
		AirDensity:     opts.AirDensity,
	}

	speeds := make([]float64, len(cleaned))
	directions := make([]float64, len(cleaned))
	for i, o := range cleaned {
		speeds[i] = o.SpeedMps
		directions[i] = o.DirectionDeg
	}
	res.Speed = ComputeSpeedStats(speeds)
	res.Direction = ComputeDirectionStats(directions)

	if len(cleaned) > 0 {
		res.Station = cleaned[0].Station
		res.PeriodFrom = cleaned[0].Timestamp
		res.PeriodTo = cleaned[0].Timestamp
		for _, o := range cleaned[1:] {
			if o.Timestamp.Before(res.PeriodFrom) {
				res.PeriodFrom = o.Timestamp
			}
			if o.Timestamp.After(res.PeriodTo) {
				res.PeriodTo = o.Timestamp
			}
		}
	}

	bins := BinBySector(cleaned, opts.SectorCount)
	res.Sectors = make([]SectorSummary, opts.SectorCount)
	maxCount := 0
	for i := 0; i < opts.SectorCount; i++ {
		low, high := SectorBounds(i, opts.SectorCount)
		sectorSpeeds := bins[i]

		s := SectorSummary{
			Index:                  i,
			Label:                  SectorLabel(i, opts.SectorCount),
			LowDeg:                 low,
			HighDeg:                high,
			Count:                  len(sectorSpeeds),
			MeanSpeedMps:           math.NaN(),
			PowerDensityWm2:        math.NaN(),
			WeibullPowerDensityWm2: math.NaN(),
		}
		if len(cleaned) > 0 {
			s.Frequency = float64(len(sectorSpeeds)) / float64(len(cleaned))
		}
		if len(sectorSpeeds) > 0 {
			s.MeanSpeedMps = ComputeSpeedStats(sectorSpeeds).Mean
			s.PowerDensityWm2 = PowerDensity(sectorSpeeds, opts.AirDensity)
		}

		fit, err := FitWeibull(sectorSpeeds, opts.MinSectorSamples)
		if err != nil {
			s.FitErr = err.Error()
		} else {
			s.Fit = &fit
			s.WeibullPowerDensityWm2 = WeibullPowerDensity(fit, opts.AirDensity)
		}

		if s.Count > maxCount {
			maxCount = s.Count
			res.DominantSector = i
		}
		res.Sectors[i] = s
	}

	res.PowerDensityWm2 = PowerDensity(speeds, opts.AirDensity)
	res.WindClass = WindClass(res.PowerDensityWm2)

	return res
}

// PeriodLabel formats the analysis period for filenames and report headers.
func (r *Result) PeriodLabel() string {
	if r.PeriodFrom.IsZero() {
		return "empty"
	}
	const layout = "20060102"
	return r.PeriodFrom.Format(layout) + "-" + r.PeriodTo.Format(layout)
}

// RunTimestamp formats a run start time the way artifact directories are
// named.
func RunTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
