package calendar

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"calassist/internal/logging"
)

// Refresher periodically replaces the snapshot with a fresh fetch from
// the remote calendar. The horizon is centered on "now": events from one
// week back to the configured span ahead are loaded.
type Refresher struct {
	svc     Service
	snap    *Snapshot
	spec    string
	horizon time.Duration
	log     logging.Logger
	cron    *cron.Cron
}

// NewRefresher creates a refresher with the given cron spec (for example
// "@every 15m") and forward horizon.
func NewRefresher(svc Service, snap *Snapshot, spec string, horizon time.Duration, log logging.Logger) *Refresher {
	if log == nil {
		log = logging.DefaultLogger()
	}
	if horizon <= 0 {
		horizon = 30 * 24 * time.Hour
	}
	return &Refresher{
		svc:     svc,
		snap:    snap,
		spec:    spec,
		horizon: horizon,
		log:     log,
	}
}

// RefreshNow fetches events immediately and replaces the snapshot.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	now := time.Now()
	events, err := r.svc.ListEvents(ctx, now.Add(-7*24*time.Hour), now.Add(r.horizon))
	if err != nil {
		return err
	}
	r.snap.Replace(events)
	r.log.Info("calendar snapshot refreshed", "event_count", len(events))
	return nil
}

// Start performs an initial refresh and schedules periodic ones.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.RefreshNow(ctx); err != nil {
		// Periodic refreshes may still succeed once connectivity returns.
		r.log.Warn("initial calendar refresh failed", "error", err.Error())
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(r.spec, func() {
		if err := r.RefreshNow(ctx); err != nil {
			r.log.Warn("calendar refresh failed", "error", err.Error())
		}
	}); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop stops the periodic refresh schedule.
func (r *Refresher) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}
