package database

import (
	"context"
	"fmt"

	"github.com/yourusername/spread-sim/internal/config"
)

// Initialize creates a connection pool and makes sure the stats table exists
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the stats table when missing
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create %s table: %w", TeamSeasonStatsTable, err)
	}
	return nil
}
