// Package config provides configuration management for the spread simulator.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Simulation    SimulationConfig    `mapstructure:"simulation" validate:"required"`
	StatsProvider StatsProviderConfig `mapstructure:"stats_provider" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database"`
	SQLite        SQLiteConfig        `mapstructure:"sqlite"`
	Cache         CacheConfig         `mapstructure:"cache" validate:"required"`
	Server        ServerConfig        `mapstructure:"server" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name          string `mapstructure:"name" validate:"required"`
	Environment   string `mapstructure:"environment" validate:"required,environment"`
	LogLevel      string `mapstructure:"log_level" validate:"required,loglevel"`
	DefaultSeason int    `mapstructure:"default_season" validate:"required,gte=1920,lte=2100"`
}

// SimulationConfig holds defaults applied to simulation requests
type SimulationConfig struct {
	DefaultSamples     int     `mapstructure:"default_samples" validate:"required,gt=0"`
	MaxSamples         int     `mapstructure:"max_samples" validate:"required,gt=0"`
	HomeFieldAdvantage float64 `mapstructure:"home_field_advantage" validate:"gte=-10,lte=10"`
	HomeScoreStdDev    float64 `mapstructure:"home_score_stddev" validate:"required,gt=0,lte=50"`
	AwayScoreStdDev    float64 `mapstructure:"away_score_stddev" validate:"required,gt=0,lte=50"`
	Workers            int     `mapstructure:"workers" validate:"gte=0,lte=256"`
	HistogramBins      int     `mapstructure:"histogram_bins" validate:"gte=0,lte=500"`
	SampleMarginsShown int     `mapstructure:"sample_margins_shown" validate:"gte=0"`
}

// StatsProviderConfig selects and configures the season statistics source
type StatsProviderConfig struct {
	Kind           string  `mapstructure:"kind" validate:"required,provider"`
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
	StaticFile     string  `mapstructure:"static_file"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// SQLiteConfig points at a local statistics database file
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig represents season cache configuration
type CacheConfig struct {
	Backend       string `mapstructure:"backend" validate:"required,cachebackend"`
	TTLSeconds    int    `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

// ServerConfig represents the HTTP API configuration
type ServerConfig struct {
	Port                  int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	HealthPort            int      `mapstructure:"health_port" validate:"omitempty,min=1,max=65535"`
	AllowedOrigins        []string `mapstructure:"allowed_origins"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig controls periodic season cache refresh
type ScheduleConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	RefreshCron string `mapstructure:"refresh_cron"`
	Seasons     []int  `mapstructure:"seasons"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// CacheKeyPrefix returns the configured cache key prefix or the app name
func (c *Config) CacheKeyPrefix() string {
	if c.Cache.KeyPrefix != "" {
		return c.Cache.KeyPrefix
	}
	return c.App.Name
}
