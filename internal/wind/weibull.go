package wind

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultMinSectorSamples is the minimum number of positive-speed samples a
// sector needs before a Weibull fit is attempted.
const DefaultMinSectorSamples = 10

var (
	// ErrInsufficientData marks a sector with too few positive speeds to fit.
	ErrInsufficientData = errors.New("insufficient data for weibull fit")

	// ErrNoConvergence marks a sector whose likelihood maximization did not
	// converge (e.g. near-constant speeds).
	ErrNoConvergence = errors.New("weibull fit did not converge")
)

const (
	fitMaxIter = 100
	fitTol     = 1e-10
)

// FitWeibull estimates two-parameter Weibull shape and scale for a speed
// sample by maximum likelihood. Zero speeds (calms) are outside the support
// of the density and are excluded before fitting; minSamples is the minimum
// number of positive speeds required (DefaultMinSectorSamples when <= 0).
//
// The shape k solves the profile likelihood equation
//
//	Σ v^k ln v / Σ v^k − 1/k − mean(ln v) = 0
//
// by Newton iteration from the moment-based starting point (σ/μ)^-1.086,
// after which the scale is c = (Σ v^k / n)^(1/k).
func FitWeibull(speeds []float64, minSamples int) (WeibullFit, error) {
	if minSamples <= 0 {
		minSamples = DefaultMinSectorSamples
	}

	positive := make([]float64, 0, len(speeds))
	for _, v := range speeds {
		if v > 0 {
			positive = append(positive, v)
		}
	}
	if len(positive) < minSamples {
		return WeibullFit{}, ErrInsufficientData
	}

	mean := stat.Mean(positive, nil)
	sd := stat.StdDev(positive, nil)
	if sd <= 0 || math.IsNaN(sd) {
		// Constant sample: the likelihood has no interior maximum in k.
		return WeibullFit{}, ErrNoConvergence
	}

	var meanLog float64
	for _, v := range positive {
		meanLog += math.Log(v)
	}
	meanLog /= float64(len(positive))

	// Justus moment approximation as the starting point.
	k := math.Pow(sd/mean, -1.086)
	if k <= 0 || math.IsNaN(k) {
		k = 2
	}

	converged := false
	for i := 0; i < fitMaxIter; i++ {
		var sumVk, sumVkLog, sumVkLog2 float64
		for _, v := range positive {
			vk := math.Pow(v, k)
			lv := math.Log(v)
			sumVk += vk
			sumVkLog += vk * lv
			sumVkLog2 += vk * lv * lv
		}

		f := sumVkLog/sumVk - 1/k - meanLog
		df := (sumVkLog2*sumVk-sumVkLog*sumVkLog)/(sumVk*sumVk) + 1/(k*k)

		step := f / df
		next := k - step
		if next <= 0 {
			next = k / 2
		}
		if math.Abs(next-k) < fitTol*k {
			k = next
			converged = true
			break
		}
		k = next
	}
	if !converged || math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		return WeibullFit{}, ErrNoConvergence
	}

	var sumVk float64
	for _, v := range positive {
		sumVk += math.Pow(v, k)
	}
	c := math.Pow(sumVk/float64(len(positive)), 1/k)
	if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return WeibullFit{}, ErrNoConvergence
	}

	return WeibullFit{Shape: k, Scale: c}, nil
}

// Distribution returns the fitted distribution for density evaluation or
// sampling.
func (f WeibullFit) Distribution() distuv.Weibull {
	return distuv.Weibull{K: f.Shape, Lambda: f.Scale}
}

// MeanSpeed is the analytic mean c·Γ(1+1/k) of the fitted distribution.
func (f WeibullFit) MeanSpeed() float64 {
	return f.Scale * math.Gamma(1+1/f.Shape)
}

// ThirdMoment is the analytic E[v³] = c³·Γ(1+3/k) of the fitted distribution.
func (f WeibullFit) ThirdMoment() float64 {
	return math.Pow(f.Scale, 3) * math.Gamma(1+3/f.Shape)
}
