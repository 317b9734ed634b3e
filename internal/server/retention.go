package server

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// pruneTimeout bounds a single pruning run.
const pruneTimeout = 30 * time.Second

// pulsePruneStore is the storage the pruner needs.
type pulsePruneStore interface {
	DeletePulseReadingsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Pruner periodically deletes pulse readings older than the TTL.
type Pruner struct {
	cron  *cron.Cron
	store pulsePruneStore
	ttl   time.Duration
	log   *logrus.Logger
	now   func() time.Time
}

// NewPruner schedules pruning with a standard five-field cron spec or descriptor such as "@every 5m".
func NewPruner(store pulsePruneStore, ttl time.Duration, schedule string, log *logrus.Logger) (*Pruner, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("pulse TTL must be positive, got %s", ttl)
	}

	p := &Pruner{
		cron:  cron.New(),
		store: store,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}

	if _, err := p.cron.AddFunc(schedule, func() { p.run(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start begins running the schedule in the background.
func (p *Pruner) Start() {
	p.cron.Start()
	p.log.WithField("ttl", p.ttl.String()).Info("Pulse retention job started")
}

// Stop halts the schedule. The returned context is done once a running prune finishes.
func (p *Pruner) Stop() context.Context {
	return p.cron.Stop()
}

// run deletes expired readings once.
func (p *Pruner) run(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, pruneTimeout)
	defer cancel()

	deleted, err := p.store.DeletePulseReadingsBefore(ctx, p.now().Add(-p.ttl))
	if err != nil {
		p.log.WithError(err).Error("Failed to prune pulse readings")
		return 0
	}

	pulseReadingsPruned.Add(float64(deleted))
	if deleted > 0 {
		p.log.WithField("deleted", deleted).Info("Pruned expired pulse readings")
	}
	return deleted
}
