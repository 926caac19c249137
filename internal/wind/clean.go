package wind

import "math"

// NormalizeDirection wraps a finite angle into [0,360). The second return is
// false for NaN or ±Inf, which cannot be wrapped.
func NormalizeDirection(deg float64) (float64, bool) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, false
	}
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// Mod can return 360 - epsilon rounding back up to 360 for large
	// negative inputs; clamp the boundary so the invariant holds exactly.
	if d >= 360 {
		d = 0
	}
	return d, true
}

// Clean validates a batch of observations, wrapping directions into [0,360)
// and dropping rows that cannot be repaired. Dropped rows are counted by
// reason and never abort the batch.
func Clean(obs []Observation) ([]Observation, DropStats) {
	var drops DropStats
	cleaned := make([]Observation, 0, len(obs))

	for _, o := range obs {
		if o.Station == "" || o.Timestamp.IsZero() {
			drops.MissingField++
			continue
		}
		dir, ok := NormalizeDirection(o.DirectionDeg)
		if !ok {
			drops.InvalidDirection++
			continue
		}
		if math.IsNaN(o.SpeedMps) || math.IsInf(o.SpeedMps, 0) || o.SpeedMps < 0 {
			drops.InvalidSpeed++
			continue
		}
		o.DirectionDeg = dir
		cleaned = append(cleaned, o)
	}

	return cleaned, drops
}
