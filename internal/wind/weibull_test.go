package wind

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func weibullSample(t *testing.T, k, c float64, n int, seed uint64) []float64 {
	t.Helper()
	dist := distuv.Weibull{K: k, Lambda: c, Src: rand.NewPCG(seed, 0)}
	speeds := make([]float64, n)
	for i := range speeds {
		speeds[i] = dist.Rand()
	}
	return speeds
}

// TestFitWeibullRecoversParameters draws a large synthetic sample from known
// parameters and requires the MLE to land within 10%.
func TestFitWeibullRecoversParameters(t *testing.T) {
	speeds := weibullSample(t, 2, 8, 2000, 42)

	fit, err := FitWeibull(speeds, 0)
	require.NoError(t, err)

	assert.InEpsilon(t, 2.0, fit.Shape, 0.10, "shape k")
	assert.InEpsilon(t, 8.0, fit.Scale, 0.10, "scale c")
}

func TestFitWeibullOtherShapes(t *testing.T) {
	cases := []struct {
		name string
		k, c float64
	}{
		{"rayleigh-like", 2.0, 6.0},
		{"peaked", 3.5, 9.0},
		{"spread", 1.3, 4.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			speeds := weibullSample(t, tc.k, tc.c, 3000, 7)

			fit, err := FitWeibull(speeds, 0)
			require.NoError(t, err)
			assert.InEpsilon(t, tc.k, fit.Shape, 0.12)
			assert.InEpsilon(t, tc.c, fit.Scale, 0.12)
		})
	}
}

// TestFitWeibullInsufficientData: a sector below the sample threshold must
// report an explicit error, never a fit.
func TestFitWeibullInsufficientData(t *testing.T) {
	_, err := FitWeibull([]float64{3, 4, 5}, 10)
	assert.ErrorIs(t, err, ErrInsufficientData)

	// Zeros don't count towards the threshold.
	speeds := []float64{0, 0, 0, 0, 0, 0, 0, 0, 3, 4}
	_, err = FitWeibull(speeds, 10)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = FitWeibull(nil, 10)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitWeibullConstantSample(t *testing.T) {
	speeds := make([]float64, 50)
	for i := range speeds {
		speeds[i] = 5.0
	}

	_, err := FitWeibull(speeds, 10)
	assert.ErrorIs(t, err, ErrNoConvergence)
}

func TestFitWeibullExcludesCalms(t *testing.T) {
	speeds := weibullSample(t, 2, 8, 1000, 11)
	withCalms := append([]float64{0, 0, 0, 0, 0}, speeds...)

	fit, err := FitWeibull(withCalms, 0)
	require.NoError(t, err)

	fitClean, err := FitWeibull(speeds, 0)
	require.NoError(t, err)

	assert.InDelta(t, fitClean.Shape, fit.Shape, 1e-9, "calms must not shift the fit")
	assert.InDelta(t, fitClean.Scale, fit.Scale, 1e-9)
}

func TestWeibullFitMoments(t *testing.T) {
	fit := WeibullFit{Shape: 2, Scale: 8}

	// Mean of Weibull(2, c) is c·Γ(1.5) = c·√π/2.
	wantMean := 8 * math.Sqrt(math.Pi) / 2
	assert.InDelta(t, wantMean, fit.MeanSpeed(), 1e-12)

	// E[v³] = c³·Γ(1+3/2) = c³·(3/4)√π.
	wantThird := math.Pow(8, 3) * 0.75 * math.Sqrt(math.Pi)
	assert.InDelta(t, wantThird, fit.ThirdMoment(), 1e-9)

	dist := fit.Distribution()
	assert.Equal(t, 2.0, dist.K)
	assert.Equal(t, 8.0, dist.Lambda)
}
