package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spread-sim/internal/database"
	"github.com/yourusername/spread-sim/internal/datasource"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func sampleRows(season int) []datasource.TeamSeasonData {
	return []datasource.TeamSeasonData{
		{
			TeamCode:            "KC",
			DisplayName:         "Kansas City",
			Season:              season,
			PointsFor:           decimal.RequireFromString("459"),
			PointsAgainst:       decimal.RequireFromString("340"),
			GamesPlayed:         intPtr(17),
			OffensiveEfficiency: decPtr("0.10"),
			DefensiveEfficiency: decPtr("0.07"),
		},
		{
			TeamCode:      "DEN",
			DisplayName:   "Denver",
			Season:        season,
			PointsFor:     decimal.RequireFromString("357"),
			PointsAgainst: decimal.RequireFromString("357"),
			GamesPlayed:   intPtr(17),
		},
	}
}

func setupSQLiteRepository(t *testing.T) *SQLiteTeamStatsRepository {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteTeamStatsRepository(db)
}

func TestSQLiteTeamStatsRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := setupSQLiteRepository(t)

	require.NoError(t, repo.UpsertSeason(ctx, sampleRows(2024)))

	rows, err := repo.ListSeason(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by team code
	assert.Equal(t, "DEN", rows[0].TeamCode)
	assert.Nil(t, rows[0].OffensiveEfficiency)
	assert.Equal(t, "KC", rows[1].TeamCode)
	require.NotNil(t, rows[1].GamesPlayed)
	assert.Equal(t, 17, *rows[1].GamesPlayed)
	require.NotNil(t, rows[1].OffensiveEfficiency)
	assert.True(t, rows[1].OffensiveEfficiency.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, rows[1].PointsFor.Equal(decimal.NewFromInt(459)))
	assert.WithinDuration(t, time.Now(), rows[1].FetchedAt, time.Minute)
}

func TestSQLiteTeamStatsRepositoryUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	repo := setupSQLiteRepository(t)
	require.NoError(t, repo.UpsertSeason(ctx, sampleRows(2024)))

	updated := sampleRows(2024)[:1]
	updated[0].PointsFor = decimal.RequireFromString("480")
	updated[0].GamesPlayed = nil
	require.NoError(t, repo.UpsertSeason(ctx, updated))

	rows, err := repo.ListSeason(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[1].PointsFor.Equal(decimal.NewFromInt(480)))
	assert.Nil(t, rows[1].GamesPlayed)
}

func TestSQLiteTeamStatsRepositorySeasons(t *testing.T) {
	ctx := context.Background()
	repo := setupSQLiteRepository(t)
	require.NoError(t, repo.UpsertSeason(ctx, sampleRows(2024)))
	require.NoError(t, repo.UpsertSeason(ctx, sampleRows(2023)))

	seasons, err := repo.ListSeasons(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2023, 2024}, seasons)

	deleted, err := repo.DeleteSeason(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	rows, err := repo.ListSeason(ctx, 2023)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSQLiteRepositoryAsProvider(t *testing.T) {
	ctx := context.Background()
	repo := setupSQLiteRepository(t)
	require.NoError(t, repo.UpsertSeason(ctx, sampleRows(2024)))

	provider := datasource.NewStoreProvider("sqlite", repo)
	rows, err := provider.FetchSeasonStats(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = provider.FetchSeasonStats(ctx, 2019)
	dsErr, ok := datasource.AsDataSourceError(err)
	require.True(t, ok)
	assert.Equal(t, datasource.ErrCodeNotFound, dsErr.Code)
}

func TestPostgresTeamStatsRepository(t *testing.T) {
	dsn := os.Getenv("SPREAD_SIM_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Integration test - set SPREAD_SIM_TEST_DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewDBFromDSN(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.EnsureSchema(ctx, db))

	repo := NewPostgresTeamStatsRepository(db)
	const season = 1901
	_, err = repo.DeleteSeason(ctx, season)
	require.NoError(t, err)

	require.NoError(t, repo.UpsertSeason(ctx, sampleRows(season)))
	rows, err := repo.ListSeason(ctx, season)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "DEN", rows[0].TeamCode)
	require.NotNil(t, rows[1].DefensiveEfficiency)
	assert.True(t, rows[1].DefensiveEfficiency.Equal(decimal.RequireFromString("0.07")))

	deleted, err := repo.DeleteSeason(ctx, season)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
