package wind

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpeedStats holds linear descriptive statistics for a speed series.
// All values are NaN for an empty series; StdDev is NaN below two samples.
type SpeedStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean_mps"`
	Min    float64 `json:"min_mps"`
	Max    float64 `json:"max_mps"`
	StdDev float64 `json:"stddev_mps"`
}

// DirectionStats holds circular statistics for a direction series, computed
// from sine/cosine components so that values straddling 0°/360° average
// correctly. All values are NaN for an empty series.
type DirectionStats struct {
	Count int `json:"count"`

	// CircularMean is the mean direction in [0,360).
	CircularMean float64 `json:"circular_mean_deg"`

	// CircularStdDev is sqrt(-2 ln R̄) converted to degrees, where R̄ is
	// the mean resultant length. +Inf when R̄ == 0 (perfectly dispersed).
	CircularStdDev float64 `json:"circular_stddev_deg"`

	// Resultant is R̄ in [0,1]; 1 means all directions identical.
	Resultant float64 `json:"resultant"`
}

// ComputeSpeedStats computes descriptive statistics over a speed series.
func ComputeSpeedStats(speeds []float64) SpeedStats {
	if len(speeds) == 0 {
		return SpeedStats{
			Mean:   math.NaN(),
			Min:    math.NaN(),
			Max:    math.NaN(),
			StdDev: math.NaN(),
		}
	}
	return SpeedStats{
		Count:  len(speeds),
		Mean:   stat.Mean(speeds, nil),
		Min:    floats.Min(speeds),
		Max:    floats.Max(speeds),
		StdDev: stat.StdDev(speeds, nil),
	}
}

// ComputeDirectionStats computes the circular mean and spread of a direction
// series given in degrees.
func ComputeDirectionStats(directions []float64) DirectionStats {
	if len(directions) == 0 {
		return DirectionStats{
			CircularMean:   math.NaN(),
			CircularStdDev: math.NaN(),
			Resultant:      math.NaN(),
		}
	}

	var sumSin, sumCos float64
	for _, d := range directions {
		rad := d * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
	}
	n := float64(len(directions))
	meanSin := sumSin / n
	meanCos := sumCos / n

	mean := math.Atan2(meanSin, meanCos) * 180 / math.Pi
	if mean < 0 {
		mean += 360
	}

	r := math.Hypot(meanSin, meanCos)
	if r > 1 {
		r = 1 // guard against rounding just above 1
	}
	var spread float64
	if r == 0 {
		spread = math.Inf(1)
	} else {
		spread = math.Sqrt(-2*math.Log(r)) * 180 / math.Pi
	}

	return DirectionStats{
		Count:          len(directions),
		CircularMean:   mean,
		CircularStdDev: spread,
		Resultant:      r,
	}
}
