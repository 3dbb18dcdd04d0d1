package repository

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/spread-sim/internal/datasource"
)

const (
	selectSeasonColumns = `season, team_code, display_name, points_for, points_against,
		games_played, offensive_efficiency, defensive_efficiency, updated_at`
	errScanTeamStats = "failed to scan team stats: %w"
)

// scanner is satisfied by pgx.Rows and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanTeamSeasonData(row scanner, updatedAt any) (datasource.TeamSeasonData, error) {
	var (
		data     datasource.TeamSeasonData
		games    sql.NullInt64
		off, def decimal.NullDecimal
	)
	err := row.Scan(
		&data.Season, &data.TeamCode, &data.DisplayName, &data.PointsFor, &data.PointsAgainst,
		&games, &off, &def, updatedAt,
	)
	if err != nil {
		return datasource.TeamSeasonData{}, err
	}
	if games.Valid {
		g := int(games.Int64)
		data.GamesPlayed = &g
	}
	if off.Valid {
		data.OffensiveEfficiency = &off.Decimal
	}
	if def.Valid {
		data.DefensiveEfficiency = &def.Decimal
	}
	return data, nil
}

func nullableGames(games *int) sql.NullInt64 {
	if games == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*games), Valid: true}
}

func nullableDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fetchedAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
