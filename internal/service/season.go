// Package service loads season statistics and hands matchups to the simulator.
package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/yourusername/spread-sim/internal/cache"
	"github.com/yourusername/spread-sim/internal/datasource"
	"github.com/yourusername/spread-sim/internal/logger"
	"github.com/yourusername/spread-sim/internal/metrics"
	"github.com/yourusername/spread-sim/internal/models"
)

// seasonLoadTimeout bounds a shared season fetch once it is detached from its callers
const seasonLoadTimeout = 2 * time.Minute

// SeasonService turns provider rows into sorted, cached team tables
type SeasonService struct {
	provider datasource.StatsProvider
	cache    cache.SeasonCache
	logger   *logger.DataLogger
	group    singleflight.Group
}

// NewSeasonService creates a season service. A nil cache disables caching.
func NewSeasonService(provider datasource.StatsProvider, seasonCache cache.SeasonCache, log *logrus.Logger) *SeasonService {
	return &SeasonService{
		provider: provider,
		cache:    seasonCache,
		logger:   logger.NewDataLogger(log),
	}
}

// Load returns the season's teams ordered by label
func (s *SeasonService) Load(ctx context.Context, season int) ([]*models.TeamStatsRecord, error) {
	if s.cache != nil {
		records, found, err := s.cache.Get(ctx, season)
		if err != nil {
			s.logger.WithError(err).WithField("season", season).Warn("Season cache read failed")
		} else if found {
			metrics.RecordSeasonCacheHit()
			return records, nil
		}
		metrics.RecordSeasonCacheMiss()
	}

	// the shared fetch is detached from callers; each caller stops on its own ctx
	ch := s.group.DoChan(strconv.Itoa(season), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), seasonLoadTimeout)
		defer cancel()
		return s.fetchAndStore(fetchCtx, season)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]*models.TeamStatsRecord)), nil
	}
}

// Refresh reloads a season from the provider, replacing any cached table
func (s *SeasonService) Refresh(ctx context.Context, season int) ([]*models.TeamStatsRecord, error) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, season); err != nil {
			s.logger.WithError(err).WithField("season", season).Warn("Season cache invalidation failed")
		}
	}

	records, err := s.fetchAndStore(ctx, season)
	if s.cache != nil {
		s.logger.LogCacheRefresh(season, s.cache.Backend(), err == nil)
	}
	return records, err
}

// Lookup finds one team by code, ignoring case
func (s *SeasonService) Lookup(ctx context.Context, season int, code string) (*models.TeamStatsRecord, error) {
	records, err := s.Load(ctx, season)
	if err != nil {
		return nil, err
	}
	want := normalizeCode(code)
	for _, record := range records {
		if record.TeamCode == want {
			return record, nil
		}
	}
	return nil, models.NewMissingDataError("team", "no statistics for %q in season %d", code, season)
}

// Matchup resolves both sides of a game. A team cannot play itself.
func (s *SeasonService) Matchup(ctx context.Context, season int, homeCode, awayCode string) (*models.TeamStatsRecord, *models.TeamStatsRecord, error) {
	if normalizeCode(homeCode) == "" || normalizeCode(awayCode) == "" {
		return nil, nil, models.NewConfigurationError("team", "home and away teams are required")
	}
	if normalizeCode(homeCode) == normalizeCode(awayCode) {
		return nil, nil, models.NewConfigurationError("away", "away team must differ from home team %s", normalizeCode(homeCode))
	}

	home, err := s.Lookup(ctx, season, homeCode)
	if err != nil {
		return nil, nil, err
	}
	away, err := s.Lookup(ctx, season, awayCode)
	if err != nil {
		return nil, nil, err
	}
	return home, away, nil
}

// Opponents lists the season's teams other than exclude
func (s *SeasonService) Opponents(ctx context.Context, season int, exclude string) ([]*models.TeamStatsRecord, error) {
	records, err := s.Load(ctx, season)
	if err != nil {
		return nil, err
	}
	skip := normalizeCode(exclude)
	return slices.DeleteFunc(records, func(r *models.TeamStatsRecord) bool {
		return r.TeamCode == skip
	}), nil
}

// ProviderName names the backing statistics provider
func (s *SeasonService) ProviderName() string {
	return s.provider.Name()
}

func (s *SeasonService) fetchAndStore(ctx context.Context, season int) ([]*models.TeamStatsRecord, error) {
	source := s.provider.Name()
	start := time.Now()

	records, err := s.fetch(ctx, season)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordSeasonLoad(source, "failure", duration.Seconds())
		s.logger.LogSeasonLoadFailed(source, season, err)
		return nil, err
	}

	metrics.RecordSeasonLoad(source, "success", duration.Seconds())
	s.logger.LogSeasonLoad(source, season, len(records), countEfficiency(records), float64(duration.Microseconds())/1000.0)

	if s.cache != nil {
		if err := s.cache.Set(ctx, season, records); err != nil {
			s.logger.WithError(err).WithField("season", season).Warn("Season cache write failed")
		}
	}
	return records, nil
}

func (s *SeasonService) fetch(ctx context.Context, season int) ([]*models.TeamStatsRecord, error) {
	if !s.provider.IsEnabled() {
		return nil, datasource.NewDataSourceError(s.provider.Name(), datasource.ErrCodeDisabled, "data source is disabled", nil)
	}

	rows, err := s.provider.FetchSeasonStats(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("loading season %d: %w", season, err)
	}

	records, err := NormalizeSeason(rows)
	if err != nil {
		return nil, fmt.Errorf("normalizing season %d: %w", season, err)
	}
	return records, nil
}

// NormalizeSeason builds records from provider rows and orders them by label
func NormalizeSeason(rows []datasource.TeamSeasonData) ([]*models.TeamStatsRecord, error) {
	records := make([]*models.TeamStatsRecord, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		row.TeamCode = normalizeCode(row.TeamCode)
		if _, dup := seen[row.TeamCode]; dup {
			return nil, models.NewInvalidInputError("team_code", "duplicate team %s", row.TeamCode)
		}
		seen[row.TeamCode] = struct{}{}
		record, err := models.NewTeamStatsRecord(row.ToTotals())
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b *models.TeamStatsRecord) int {
		return strings.Compare(a.Label(), b.Label())
	})
	return records, nil
}

func countEfficiency(records []*models.TeamStatsRecord) int {
	n := 0
	for _, r := range records {
		if r.NetRatingSource == models.NetRatingFromEfficiency {
			n++
		}
	}
	return n
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
