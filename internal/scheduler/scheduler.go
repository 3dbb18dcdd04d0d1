// Package scheduler refreshes cached season statistics on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/spread-sim/internal/models"
)

// SeasonRefresher reloads one season from the statistics provider
type SeasonRefresher interface {
	Refresh(ctx context.Context, season int) ([]*models.TeamStatsRecord, error)
}

// Scheduler manages scheduled season refresh jobs
type Scheduler struct {
	cron            *cron.Cron
	refresher       SeasonRefresher
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(refresher SeasonRefresher, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		refresher:       refresher,
		logger:          log.WithField("component", "scheduler"),
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      5 * time.Minute,
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleSeasonRefresh registers one job that refreshes every listed season in order
func (s *Scheduler) ScheduleSeasonRefresh(cronExpression string, seasons []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if len(seasons) == 0 {
		return fmt.Errorf("no seasons to refresh")
	}

	targets := append([]int(nil), seasons...)
	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()
		s.RefreshSeasons(ctx, targets)
	})
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"cron":    cronExpression,
		"seasons": targets,
	}).Info("Scheduled season refresh job")

	return nil
}

// RefreshSeasons runs one refresh pass and returns the number of seasons that failed.
// A failing season does not stop the remaining ones.
func (s *Scheduler) RefreshSeasons(ctx context.Context, seasons []int) int {
	failed := 0
	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			s.logger.WithError(err).Warn("Season refresh pass cancelled")
			return failed + 1
		}
		start := time.Now()
		records, err := s.refresher.Refresh(ctx, season)
		if err != nil {
			failed++
			s.logger.WithError(err).WithField("season", season).Error("Scheduled season refresh failed")
			continue
		}
		s.logger.WithFields(logrus.Fields{
			"season":      season,
			"teams":       len(records),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("Scheduled season refresh completed")
	}
	return failed
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs up to the graceful timeout
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler did not stop within %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}
	return entries
}
