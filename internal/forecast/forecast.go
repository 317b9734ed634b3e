// Package forecast projects a short-horizon burnout risk trend from past scores.
package forecast

import (
	"math"

	"github.com/equilibria/burnout-risk/internal/types"
)

// Horizon is the number of future steps produced by ForecastRisk.
const Horizon = 14

// minHistory is the fewest points that define a unique least-squares slope.
const minHistory = 2

// Trend is an ordinary least-squares line fitted to (index, score) pairs.
type Trend struct {
	Slope     float64
	Intercept float64
}

// At evaluates the trend at index x.
func (t Trend) At(x float64) float64 {
	return t.Slope*x + t.Intercept
}

// ForecastRisk fits a linear trend to chronological, equally spaced risk scores and extrapolates
// it Horizon steps ahead. The band is the point forecast plus or minus the population standard
// deviation of the history; it does not widen with distance. Every value is clamped to [0,1].
func ForecastRisk(past []float64) (*types.ForecastResult, error) {
	if len(past) < minHistory {
		return nil, &InsufficientHistoryError{Points: len(past), Required: minHistory}
	}
	for i, v := range past {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &NonFiniteScoreError{Index: i}
		}
	}

	trend := FitTrend(past)
	sigma := PopulationStdDev(past)
	n := float64(len(past))

	result := &types.ForecastResult{
		Forecast:   make([]float64, Horizon),
		LowerBound: make([]float64, Horizon),
		UpperBound: make([]float64, Horizon),
	}
	for d := 1; d <= Horizon; d++ {
		value := clamp01(trend.At(n + float64(d)))
		result.Forecast[d-1] = value
		result.LowerBound[d-1] = clamp01(value - sigma)
		result.UpperBound[d-1] = clamp01(value + sigma)
	}

	return result, nil
}

// FitTrend fits y = slope*x + intercept over x = 0..len(ys)-1.
// Callers must pass at least two points.
func FitTrend(ys []float64) Trend {
	n := float64(len(ys))
	meanX := (n - 1) / 2
	meanY := mean(ys)

	var sxy, sxx float64
	for i, y := range ys {
		dx := float64(i) - meanX
		sxy += dx * (y - meanY)
		sxx += dx * dx
	}

	slope := sxy / sxx
	return Trend{Slope: slope, Intercept: meanY - slope*meanX}
}

// PopulationStdDev returns the standard deviation of values without Bessel's correction.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)))
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}
