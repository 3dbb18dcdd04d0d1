// Package config provides configuration management for the spread simulator.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "SPREAD_SIM"
	defaultConfigPath = "config/config.yaml"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables are used instead.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults mirrors the slider defaults of the interactive front end
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "spread-sim")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.default_season", 2025)

	v.SetDefault("simulation.default_samples", 10000)
	v.SetDefault("simulation.max_samples", 50000)
	v.SetDefault("simulation.home_field_advantage", 1.5)
	v.SetDefault("simulation.home_score_stddev", 7.0)
	v.SetDefault("simulation.away_score_stddev", 6.0)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.histogram_bins", 50)
	v.SetDefault("simulation.sample_margins_shown", 50)

	v.SetDefault("stats_provider.kind", "http")
	v.SetDefault("stats_provider.timeout_seconds", 30)
	v.SetDefault("stats_provider.max_retries", 5)
	v.SetDefault("stats_provider.rate_limit", 10.0)

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 5)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_seconds", 3600)

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.health_port", 8080)
	v.SetDefault("server.request_timeout_seconds", 30)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("schedule.refresh_cron", "0 */6 * * *")
}
