package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equilibria/burnout-risk/internal/types"
)

type failingPruneStore struct{}

func (failingPruneStore) DeletePulseReadingsBefore(context.Context, time.Time) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestNewPruner_Validation(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		schedule string
		wantErr  bool
	}{
		{name: "cron spec", ttl: time.Minute, schedule: "*/5 * * * *"},
		{name: "descriptor", ttl: time.Minute, schedule: "@every 30s"},
		{name: "zero ttl", ttl: 0, schedule: "@every 30s", wantErr: true},
		{name: "bad schedule", ttl: time.Minute, schedule: "sometimes", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPruner(newFakeStore(), tt.ttl, tt.schedule, quietLogger())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPruner_Run(t *testing.T) {
	store := newFakeStore()
	fresh, stale := uuid.New(), uuid.New()
	store.pulses[fresh] = types.PulseReading{Token: fresh, CreatedAt: testNow.Add(-2 * time.Minute)}
	store.pulses[stale] = types.PulseReading{Token: stale, CreatedAt: testNow.Add(-15 * time.Minute)}

	p, err := NewPruner(store, 10*time.Minute, "@every 1m", quietLogger())
	require.NoError(t, err)
	p.now = func() time.Time { return testNow }

	assert.Equal(t, int64(1), p.run(context.Background()))
	assert.Contains(t, store.pulses, fresh)
	assert.NotContains(t, store.pulses, stale)

	assert.Equal(t, int64(0), p.run(context.Background()))
}

func TestPruner_RunStoreError(t *testing.T) {
	p, err := NewPruner(failingPruneStore{}, time.Minute, "@every 1m", quietLogger())
	require.NoError(t, err)

	assert.Equal(t, int64(0), p.run(context.Background()))
}

func TestPruner_StartStop(t *testing.T) {
	p, err := NewPruner(newFakeStore(), time.Minute, "@every 1h", quietLogger())
	require.NoError(t, err)

	p.Start()
	select {
	case <-p.Stop().Done():
	case <-time.After(time.Second):
		t.Fatal("pruner did not stop")
	}
}
