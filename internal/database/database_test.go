package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stats.db")

	db, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", TeamSeasonStatsTable,
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, TeamSeasonStatsTable, name)

	// Reopening an existing file is a no-op for the schema
	db2, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	db2.Close()
}

func TestPostgresSchema(t *testing.T) {
	dsn := os.Getenv("SPREAD_SIM_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("Integration test - set SPREAD_SIM_TEST_DATABASE_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := NewDBFromDSN(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, db.HealthCheck(ctx))
}
