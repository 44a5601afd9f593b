// Package scheduler re-runs stale comparisons on a cron schedule so tracked
// groups keep an up-to-date snapshot without user interaction.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/avrek/wb-radar/internal/repository"
	"github.com/avrek/wb-radar/internal/services/comparator"
)

// Scheduler periodically refreshes comparison groups whose latest snapshot
// is older than the TTL.
type Scheduler struct {
	log        *slog.Logger
	comparator comparator.Interface
	groups     repository.GroupRepository
	ttl        time.Duration
	cron       *cron.Cron
}

// NewScheduler creates a scheduler around the comparator.
func NewScheduler(log *slog.Logger, cmp comparator.Interface, groups repository.GroupRepository, ttl time.Duration) *Scheduler {
	return &Scheduler{
		log:        log,
		comparator: cmp,
		groups:     groups,
		ttl:        ttl,
		cron:       cron.New(),
	}
}

// Start registers the refresh job under the given cron spec and begins
// running it.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info("Refresh scheduler started", "schedule", spec, "ttl", s.ttl)

	return nil
}

// Stop stops the cron loop; a running job finishes on its own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Refresh scheduler stopped")
}

// run refreshes every stale comparison group. Failures are logged and never
// abort the sweep.
func (s *Scheduler) run() {
	const opn = "scheduler.run"
	ctx := context.Background()
	log := s.log.With("op", opn)

	stale, err := s.groups.ListStaleComparisonGroups(ctx, time.Now().UTC().Add(-s.ttl))
	if err != nil {
		log.Error("Failed to list stale groups", "error", err)
		return
	}
	if len(stale) == 0 {
		log.Debug("No stale groups to refresh")
		return
	}

	log.Info("Refreshing stale comparison groups", "count", len(stale))
	for _, group := range stale {
		if _, err := s.comparator.Compare(ctx, group.ID, group.UserID, true); err != nil {
			log.Warn("Scheduled refresh failed", "group_id", group.ID, "error", err)
		}
	}
}
