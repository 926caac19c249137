package wind

import "math"

// DefaultAirDensity is standard sea-level air density in kg/m³.
const DefaultAirDensity = 1.225

// PowerDensity computes the wind power density P = 0.5·ρ·E[v³] in W/m² from
// observed speeds. NaN for an empty sample.
func PowerDensity(speeds []float64, airDensity float64) float64 {
	if len(speeds) == 0 {
		return math.NaN()
	}
	var sumCubes float64
	for _, v := range speeds {
		sumCubes += v * v * v
	}
	return 0.5 * airDensity * sumCubes / float64(len(speeds))
}

// WeibullPowerDensity computes the analytic power density from a fitted
// distribution: P = 0.5·ρ·c³·Γ(1+3/k).
func WeibullPowerDensity(fit WeibullFit, airDensity float64) float64 {
	return 0.5 * airDensity * fit.ThirdMoment()
}

// windClassTable maps power density at 10 m to the NREL wind power class
// labels. Thresholds are upper bounds in W/m².
var windClassTable = []struct {
	maxPower float64
	label    string
}{
	{100, "class 1 (poor)"},
	{150, "class 2 (marginal)"},
	{200, "class 3 (fair)"},
	{250, "class 4 (good)"},
	{300, "class 5 (excellent)"},
	{400, "class 6 (outstanding)"},
	{math.Inf(1), "class 7 (superb)"},
}

// WindClass returns the qualitative wind power class label for a power
// density in W/m². Returns "unclassified" for NaN or negative values.
func WindClass(powerDensityWm2 float64) string {
	if math.IsNaN(powerDensityWm2) || powerDensityWm2 < 0 {
		return "unclassified"
	}
	for _, row := range windClassTable {
		if powerDensityWm2 < row.maxPower {
			return row.label
		}
	}
	return windClassTable[len(windClassTable)-1].label
}
