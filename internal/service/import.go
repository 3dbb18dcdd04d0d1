package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/spread-sim/internal/datasource"
	"github.com/yourusername/spread-sim/internal/logger"
	"github.com/yourusername/spread-sim/internal/repository"
)

// ImportMetrics summarizes one season import
type ImportMetrics struct {
	Season   int
	Source   string
	Teams    int
	Duration time.Duration
}

// ImportService copies season rows from a provider into a statistics store
type ImportService struct {
	source datasource.StatsProvider
	store  repository.TeamStatsRepository
	logger *logger.DataLogger
}

// NewImportService creates a new import service
func NewImportService(source datasource.StatsProvider, store repository.TeamStatsRepository, log *logrus.Logger) *ImportService {
	return &ImportService{
		source: source,
		store:  store,
		logger: logger.NewDataLogger(log),
	}
}

// ImportSeason fetches, validates and upserts one season. Nothing is written
// unless every row normalizes into a valid record.
func (s *ImportService) ImportSeason(ctx context.Context, season int) (*ImportMetrics, error) {
	start := time.Now()

	rows, err := s.source.FetchSeasonStats(ctx, season)
	if err != nil {
		s.logger.LogSeasonLoadFailed(s.source.Name(), season, err)
		return nil, fmt.Errorf("failed to fetch season %d: %w", season, err)
	}

	if _, err := NormalizeSeason(rows); err != nil {
		return nil, fmt.Errorf("season %d failed validation: %w", season, err)
	}

	if err := s.store.UpsertSeason(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to store season %d: %w", season, err)
	}

	m := &ImportMetrics{
		Season:   season,
		Source:   s.source.Name(),
		Teams:    len(rows),
		Duration: time.Since(start),
	}
	s.logger.WithFields(logrus.Fields{
		"source":      m.Source,
		"season":      season,
		"teams":       m.Teams,
		"duration_ms": m.Duration.Milliseconds(),
	}).Info("Season imported")
	return m, nil
}
