package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/spread-sim/internal/database"
	"github.com/yourusername/spread-sim/internal/datasource"
)

// PostgresTeamStatsRepository implements TeamStatsRepository for PostgreSQL
type PostgresTeamStatsRepository struct {
	db *database.DB
}

// NewPostgresTeamStatsRepository creates a new team stats repository
func NewPostgresTeamStatsRepository(db *database.DB) *PostgresTeamStatsRepository {
	return &PostgresTeamStatsRepository{db: db}
}

// ListSeason retrieves every team row of a season ordered by team code
func (r *PostgresTeamStatsRepository) ListSeason(ctx context.Context, season int) ([]datasource.TeamSeasonData, error) {
	query := `SELECT ` + selectSeasonColumns + ` FROM team_season_stats WHERE season = $1 ORDER BY team_code`

	rows, err := r.db.Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season %d: %w", season, err)
	}
	defer rows.Close()

	var result []datasource.TeamSeasonData
	for rows.Next() {
		var updatedAt time.Time
		data, err := scanTeamSeasonData(rows, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf(errScanTeamStats, err)
		}
		data.FetchedAt = updatedAt
		result = append(result, data)
	}
	return result, rows.Err()
}

// ListSeasons returns the stored seasons in ascending order
func (r *PostgresTeamStatsRepository) ListSeasons(ctx context.Context) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT season FROM team_season_stats ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	seasons, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("failed to scan seasons: %w", err)
	}
	return seasons, nil
}

// UpsertSeason inserts or replaces team rows in one transaction
func (r *PostgresTeamStatsRepository) UpsertSeason(ctx context.Context, rows []datasource.TeamSeasonData) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
		INSERT INTO team_season_stats (season, team_code, display_name, points_for, points_against,
			games_played, offensive_efficiency, defensive_efficiency, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (season, team_code) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			points_for = EXCLUDED.points_for,
			points_against = EXCLUDED.points_against,
			games_played = EXCLUDED.games_played,
			offensive_efficiency = EXCLUDED.offensive_efficiency,
			defensive_efficiency = EXCLUDED.defensive_efficiency,
			updated_at = EXCLUDED.updated_at
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(query,
				row.Season, row.TeamCode, row.DisplayName, row.PointsFor, row.PointsAgainst,
				nullableGames(row.GamesPlayed), nullableDecimal(row.OffensiveEfficiency),
				nullableDecimal(row.DefensiveEfficiency), fetchedAt(row.FetchedAt),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to upsert team stats: %w", err)
		}
		return nil
	})
}

// DeleteSeason removes every row of a season
func (r *PostgresTeamStatsRepository) DeleteSeason(ctx context.Context, season int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM team_season_stats WHERE season = $1`, season)
	if err != nil {
		return 0, fmt.Errorf("failed to delete season %d: %w", season, err)
	}
	return tag.RowsAffected(), nil
}
