package pulse

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/equilibria/burnout-risk/internal/types"
)

func TestComputeStressIndex(t *testing.T) {
	tests := []struct {
		name          string
		heartRate     float64
		breathingRate float64
		value         float64
		breakNeeded   bool
	}{
		{name: "at baseline", heartRate: 75, breathingRate: 14, value: 0},
		{name: "below baseline", heartRate: 55, breathingRate: 10, value: 0},
		{name: "mild elevation", heartRate: 90, breathingRate: 14, value: 0.12},
		{name: "just over threshold", heartRate: 90, breathingRate: 17.5, value: 0.22, breakNeeded: true},
		{name: "capped", heartRate: 200, breathingRate: 40, value: 1, breakNeeded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStressIndex(tt.heartRate, tt.breathingRate, DefaultHeartRateBase, DefaultBreathingRateBase)
			assert.InDelta(t, tt.value, got.Value, 1e-9)
			assert.Equal(t, tt.breakNeeded, got.BreakRecommended)
		})
	}
}

func TestNewReading(t *testing.T) {
	token := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	reading := NewReading(token, types.PulseRequest{HeartRate: 105, BreathingRate: 21}, now)

	assert.Equal(t, token, reading.Token)
	assert.Equal(t, 1.0, reading.Confidence)
	assert.InDelta(t, 0.6*0.4+0.4*0.5, reading.StressIndex, 1e-9)
	assert.True(t, reading.BreakRecommended)
	assert.Equal(t, now, reading.CreatedAt)

	confidence := 0.4
	reading = NewReading(token, types.PulseRequest{HeartRate: 70, BreathingRate: 12, Confidence: &confidence}, now)
	assert.Equal(t, 0.4, reading.Confidence)
	assert.False(t, reading.BreakRecommended)
}

func TestExpired(t *testing.T) {
	now := time.Now()
	reading := types.PulseReading{CreatedAt: now.Add(-5 * time.Minute)}

	assert.False(t, Expired(reading, DefaultTTL, now))
	assert.True(t, Expired(reading, 2*time.Minute, now))
}
