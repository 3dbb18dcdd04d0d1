package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/spread-sim/internal/config"
)

// Factory creates StatsProvider implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new provider factory
func NewFactory(cfg *config.Config, log *logrus.Logger) *Factory {
	return &Factory{
		logger: log,
		config: cfg,
	}
}

// HTTPClientConfigFrom maps provider settings onto HTTP client settings
func HTTPClientConfigFrom(cfg config.StatsProviderConfig) HTTPClientConfig {
	httpCfg := DefaultHTTPClientConfig()
	if cfg.TimeoutSeconds > 0 {
		httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	httpCfg.MaxRetries = cfg.MaxRetries
	if cfg.RateLimit > 0 {
		httpCfg.RateLimit = cfg.RateLimit
	}
	return httpCfg
}

// NewProvider creates the configured provider. store backs the postgres and
// sqlite kinds and is ignored otherwise.
func (f *Factory) NewProvider(store SeasonStore) (StatsProvider, error) {
	if f.config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	cfg := f.config.StatsProvider

	switch cfg.Kind {
	case config.ProviderHTTP:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("stats API base URL is required")
		}
		httpClient := NewRateLimitedHTTPClient(HTTPClientConfigFrom(cfg), f.logger)
		return NewStatsAPIClient(httpClient, cfg.BaseURL, cfg.APIKey, true, f.logger), nil

	case config.ProviderPostgres, config.ProviderSQLite:
		if store == nil {
			return nil, fmt.Errorf("%s provider requires a season store", cfg.Kind)
		}
		return NewStoreProvider(cfg.Kind, store), nil

	case config.ProviderStatic:
		return LoadStaticFile(cfg.StaticFile)

	default:
		return nil, fmt.Errorf("unknown stats provider: %s", cfg.Kind)
	}
}
