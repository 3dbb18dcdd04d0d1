package repository

import (
	"context"

	"github.com/yourusername/spread-sim/internal/datasource"
)

// TeamStatsRepository defines the interface for season statistics storage.
// Implementations satisfy datasource.SeasonStore.
type TeamStatsRepository interface {
	ListSeason(ctx context.Context, season int) ([]datasource.TeamSeasonData, error)
	ListSeasons(ctx context.Context) ([]int, error)
	UpsertSeason(ctx context.Context, rows []datasource.TeamSeasonData) error
	DeleteSeason(ctx context.Context, season int) (int64, error)
}
