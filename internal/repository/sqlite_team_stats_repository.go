package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/spread-sim/internal/datasource"
)

// SQLiteTeamStatsRepository implements TeamStatsRepository over a local SQLite file
type SQLiteTeamStatsRepository struct {
	db *sql.DB
}

// NewSQLiteTeamStatsRepository creates a repository over an opened database
func NewSQLiteTeamStatsRepository(db *sql.DB) *SQLiteTeamStatsRepository {
	return &SQLiteTeamStatsRepository{db: db}
}

// ListSeason retrieves every team row of a season ordered by team code
func (r *SQLiteTeamStatsRepository) ListSeason(ctx context.Context, season int) ([]datasource.TeamSeasonData, error) {
	query := `SELECT ` + selectSeasonColumns + ` FROM team_season_stats WHERE season = ? ORDER BY team_code`

	rows, err := r.db.QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query season %d: %w", season, err)
	}
	defer rows.Close()

	var result []datasource.TeamSeasonData
	for rows.Next() {
		var updatedAt string
		data, err := scanTeamSeasonData(rows, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf(errScanTeamStats, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			data.FetchedAt = t
		}
		result = append(result, data)
	}
	return result, rows.Err()
}

// ListSeasons returns the stored seasons in ascending order
func (r *SQLiteTeamStatsRepository) ListSeasons(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT season FROM team_season_stats ORDER BY season`)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("failed to scan seasons: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

// UpsertSeason inserts or replaces team rows in one transaction
func (r *SQLiteTeamStatsRepository) UpsertSeason(ctx context.Context, rows []datasource.TeamSeasonData) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO team_season_stats (season, team_code, display_name, points_for, points_against,
			games_played, offensive_efficiency, defensive_efficiency, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (season, team_code) DO UPDATE SET
			display_name = excluded.display_name,
			points_for = excluded.points_for,
			points_against = excluded.points_against,
			games_played = excluded.games_played,
			offensive_efficiency = excluded.offensive_efficiency,
			defensive_efficiency = excluded.defensive_efficiency,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx,
			row.Season, row.TeamCode, row.DisplayName, row.PointsFor.String(), row.PointsAgainst.String(),
			nullableGames(row.GamesPlayed), nullableDecimal(row.OffensiveEfficiency),
			nullableDecimal(row.DefensiveEfficiency), fetchedAt(row.FetchedAt).Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert team %s: %w", row.TeamCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteSeason removes every row of a season
func (r *SQLiteTeamStatsRepository) DeleteSeason(ctx context.Context, season int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM team_season_stats WHERE season = ?`, season)
	if err != nil {
		return 0, fmt.Errorf("failed to delete season %d: %w", season, err)
	}
	return res.RowsAffected()
}
