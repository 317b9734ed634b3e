// Package pulse derives a stress index from heart and breathing rate readings.
package pulse

import (
	"time"

	"github.com/google/uuid"

	"github.com/equilibria/burnout-risk/internal/types"
)

// Resting baselines used when none are supplied.
const (
	DefaultHeartRateBase     = 75.0
	DefaultBreathingRateBase = 14.0
)

const (
	heartRateWeight     = 0.6
	breathingRateWeight = 0.4
	breakThreshold      = 0.18
)

// DefaultTTL is how long a reading stays visible after it was captured.
const DefaultTTL = 10 * time.Minute

// StressIndex is the combined physiological stress estimate in [0,1].
type StressIndex struct {
	Value            float64
	BreakRecommended bool
}

// ComputeStressIndex weighs the relative elevation of heart rate and breathing rate
// above their baselines. Each elevation is capped at 1; rates at or below baseline count as 0.
func ComputeStressIndex(heartRate, breathingRate, heartRateBase, breathingRateBase float64) StressIndex {
	hrDelta := max(0, (heartRate-heartRateBase)/heartRateBase)
	brDelta := max(0, (breathingRate-breathingRateBase)/breathingRateBase)

	value := heartRateWeight*min(1, hrDelta) + breathingRateWeight*min(1, brDelta)
	return StressIndex{
		Value:            value,
		BreakRecommended: value > breakThreshold,
	}
}

// NewReading builds a stored reading from a request, using default baselines.
// Confidence defaults to 1 when omitted.
func NewReading(token uuid.UUID, req types.PulseRequest, now time.Time) types.PulseReading {
	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	index := ComputeStressIndex(req.HeartRate, req.BreathingRate, DefaultHeartRateBase, DefaultBreathingRateBase)
	return types.PulseReading{
		Token:            token,
		HeartRate:        req.HeartRate,
		BreathingRate:    req.BreathingRate,
		Confidence:       confidence,
		StressIndex:      index.Value,
		BreakRecommended: index.BreakRecommended,
		CreatedAt:        now.UTC(),
	}
}

// Expired reports whether reading is older than ttl at now.
func Expired(reading types.PulseReading, ttl time.Duration, now time.Time) bool {
	return now.Sub(reading.CreatedAt) > ttl
}
