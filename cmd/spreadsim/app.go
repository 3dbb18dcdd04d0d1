package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/spread-sim/internal/cache"
	"github.com/yourusername/spread-sim/internal/config"
	"github.com/yourusername/spread-sim/internal/database"
	"github.com/yourusername/spread-sim/internal/datasource"
	"github.com/yourusername/spread-sim/internal/repository"
	"github.com/yourusername/spread-sim/internal/service"
)

// application holds the wired dependencies shared by the subcommands
type application struct {
	cfg         *config.Config
	logger      *logrus.Logger
	db          *database.DB
	sqlite      *sql.DB
	store       repository.TeamStatsRepository
	provider    datasource.StatsProvider
	seasonCache cache.SeasonCache
	seasons     *service.SeasonService
}

func newApplication(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: log}

	if err := app.openStore(ctx); err != nil {
		app.Close()
		return nil, err
	}

	var store datasource.SeasonStore
	if app.store != nil {
		store = app.store
	}
	provider, err := datasource.NewFactory(cfg, log).NewProvider(store)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create stats provider: %w", err)
	}
	app.provider = provider

	seasonCache, err := cache.New(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create season cache: %w", err)
	}
	app.seasonCache = seasonCache
	app.seasons = service.NewSeasonService(provider, seasonCache, log)

	log.WithFields(logrus.Fields{
		"provider": provider.Name(),
		"cache":    seasonCache.Backend(),
	}).Debug("Application initialized")
	return app, nil
}

// openStore connects the table backing the postgres and sqlite provider kinds
func (a *application) openStore(ctx context.Context) error {
	switch a.cfg.StatsProvider.Kind {
	case config.ProviderPostgres:
		db, err := database.Initialize(ctx, a.cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.store = repository.NewPostgresTeamStatsRepository(db)
	case config.ProviderSQLite:
		db, err := database.OpenSQLite(ctx, a.cfg.SQLite.Path)
		if err != nil {
			return err
		}
		a.sqlite = db
		a.store = repository.NewSQLiteTeamStatsRepository(db)
	}
	return nil
}

// importSource is the provider a season import reads from: the JSON file when
// given, otherwise the stats API.
func (a *application) importSource(path string) (datasource.StatsProvider, error) {
	if path != "" {
		return datasource.LoadStaticFile(path)
	}
	pc := a.cfg.StatsProvider
	if pc.BaseURL == "" {
		return nil, fmt.Errorf("import needs --from-file or stats_provider.base_url")
	}
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfigFrom(pc), a.logger)
	return datasource.NewStatsAPIClient(httpClient, pc.BaseURL, pc.APIKey, true, a.logger), nil
}

// Close releases connections opened by newApplication
func (a *application) Close() {
	if closer, ok := a.seasonCache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close season cache")
		}
	}
	if a.sqlite != nil {
		if err := a.sqlite.Close(); err != nil {
			a.logger.WithError(err).Warn("Failed to close sqlite database")
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}
