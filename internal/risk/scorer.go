// Package risk scores burnout risk from self-reported wellbeing metrics.
package risk

import (
	"math"
	"strconv"

	"github.com/equilibria/burnout-risk/internal/types"
)

// Factor identifies one component of the burnout risk index.
type Factor int

// Factors in the order metrics are read. The set is closed.
const (
	FactorSleep Factor = iota
	FactorDeadlines
	FactorWorkload
	FactorStress
	FactorSentiment
	numFactors
)

var factorNames = [numFactors]string{
	FactorSleep:     "sleep",
	FactorDeadlines: "deadlines",
	FactorWorkload:  "workload",
	FactorStress:    "stress",
	FactorSentiment: "sentiment",
}

// baseWeights sum to 1.0.
var baseWeights = [numFactors]float64{
	FactorSleep:     0.30,
	FactorDeadlines: 0.25,
	FactorWorkload:  0.15,
	FactorStress:    0.20,
	FactorSentiment: 0.10,
}

// Logistic sharpening constants
const (
	logisticSteepness = 6.0
	logisticMidpoint  = 0.55
)

// String returns the factor name used in results.
func (f Factor) String() string {
	if f < 0 || f >= numFactors {
		return "unknown"
	}
	return factorNames[f]
}

// Weight returns the base weight of the factor.
func (f Factor) Weight() float64 {
	if f < 0 || f >= numFactors {
		return 0
	}
	return baseWeights[f]
}

// AllFactors returns every factor in fixed order.
func AllFactors() []Factor {
	out := make([]Factor, 0, numFactors)
	for f := Factor(0); f < numFactors; f++ {
		out = append(out, f)
	}
	return out
}

// ComponentRisk is one factor's clamped contribution, 1 meaning maximal burnout contribution.
type ComponentRisk struct {
	Factor Factor
	Value  float64
}

// metricReader pairs a factor with the read of its optional field and its transform.
type metricReader struct {
	factor    Factor
	present   func(in types.MetricInput) bool
	transform func(in types.MetricInput) float64
}

var readers = [numFactors]metricReader{
	{
		factor:    FactorSleep,
		present:   func(in types.MetricInput) bool { return in.SleepHours != nil },
		transform: func(in types.MetricInput) float64 { return SleepRisk(*in.SleepHours) },
	},
	{
		factor:    FactorDeadlines,
		present:   func(in types.MetricInput) bool { return in.DeadlinesNext7Days != nil },
		transform: func(in types.MetricInput) float64 { return DeadlineRisk(*in.DeadlinesNext7Days) },
	},
	{
		factor:    FactorWorkload,
		present:   func(in types.MetricInput) bool { return in.WorkHours != nil },
		transform: func(in types.MetricInput) float64 { return WorkloadRisk(*in.WorkHours) },
	},
	{
		factor:    FactorStress,
		present:   func(in types.MetricInput) bool { return in.StressSelfReport != nil },
		transform: func(in types.MetricInput) float64 { return StressRisk(*in.StressSelfReport) },
	},
	{
		factor:    FactorSentiment,
		present:   func(in types.MetricInput) bool { return in.SentimentScore != nil },
		transform: func(in types.MetricInput) float64 { return SentimentRisk(*in.SentimentScore) },
	},
}

// SleepRisk maps hours slept to risk: 7.5h or more is 0, 4h or less is 1.
func SleepRisk(hours float64) float64 {
	return clamp01((7.5 - hours) / 3.5)
}

// DeadlineRisk saturates at six deadlines in the next seven days.
func DeadlineRisk(deadlines int) float64 {
	return clamp01(float64(deadlines) / 6)
}

// WorkloadRisk maps weekly work hours to risk: below 20h is 0, 45h or more is 1.
func WorkloadRisk(hours float64) float64 {
	return clamp01((hours - 20) / 25)
}

// StressRisk rescales the 1-10 self rating to [0,1].
func StressRisk(rating int) float64 {
	return clamp01(float64(rating-1) / 9)
}

// SentimentRisk inverts a [-1,1] sentiment so that negative tone is high risk.
// Out-of-range sentiment is clamped to [-1,1] first.
func SentimentRisk(sentiment float64) float64 {
	s := clamp(sentiment, -1, 1)
	return clamp01((-s + 1) / 2)
}

// Components returns the component risk of every present metric, in factor order.
func Components(in types.MetricInput) []ComponentRisk {
	out := make([]ComponentRisk, 0, numFactors)
	for _, r := range readers {
		if !r.present(in) {
			continue
		}
		out = append(out, ComponentRisk{Factor: r.factor, Value: r.transform(in)})
	}
	return out
}

// Options controls how the risk index is aggregated.
type Options struct {
	// Renormalize rescales the weights of present factors to sum to 1. When false, absent
	// factors keep their share of the weight and contribute nothing.
	Renormalize bool
}

// DefaultOptions returns the production scoring options.
func DefaultOptions() Options {
	return Options{Renormalize: true}
}

// CalculateRisk scores the given metrics with DefaultOptions.
func CalculateRisk(in types.MetricInput) (*types.RiskResult, error) {
	return CalculateRiskWithOptions(in, DefaultOptions())
}

// CalculateRiskWithOptions maps a partial metric set to a burnout probability and its
// component breakdown. It returns ErrNoValidInputs when no metric is present.
func CalculateRiskWithOptions(in types.MetricInput, opts Options) (*types.RiskResult, error) {
	components := Components(in)
	if len(components) == 0 {
		return nil, ErrNoValidInputs
	}

	activeWeight := 1.0
	if opts.Renormalize {
		activeWeight = 0
		for _, c := range components {
			activeWeight += baseWeights[c.Factor]
		}
	}

	index := 0.0
	for _, c := range components {
		index += (baseWeights[c.Factor] / activeWeight) * c.Value
	}

	result := &types.RiskResult{
		BurnoutProbability: round(Probability(index)*100, 2),
		RiskIndexRaw:       round(index, 3),
		InputsUsed:         make([]string, 0, len(components)),
		Factors:            make(map[string]float64, len(components)),
	}
	for _, c := range components {
		name := c.Factor.String()
		result.InputsUsed = append(result.InputsUsed, name)
		result.Factors[name] = round(c.Value, 3)
	}

	return result, nil
}

// Probability applies logistic sharpening around the 0.55 threshold to a raw risk index.
func Probability(index float64) float64 {
	return 1 / (1 + math.Exp(-logisticSteepness*(index-logisticMidpoint)))
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}

// round rounds the exact binary value of v to the given number of decimals,
// resolving exact halves to even.
func round(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}
