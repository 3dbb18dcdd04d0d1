package simulation

import (
	"fmt"

	"github.com/yourusername/spread-sim/internal/config"
	"github.com/yourusername/spread-sim/internal/models"
)

// Defaults holds the configured values a request falls back to
type Defaults struct {
	SampleCount        int
	MaxSamples         int
	HomeFieldAdvantage float64
	HomeScoreStdDev    float64
	AwayScoreStdDev    float64
	Workers            int
	HistogramBins      int
}

// Overrides are per-request values. Nil or zero fields take the default.
type Overrides struct {
	SampleCount        *int
	HomeFieldAdvantage *float64
	HomeScoreStdDev    *float64
	AwayScoreStdDev    *float64
	MarketLine         string
	Seed               int64
}

// FromConfig converts app config to simulation defaults
func FromConfig(cfg *config.SimulationConfig) (Defaults, error) {
	if cfg == nil {
		return Defaults{}, fmt.Errorf("simulation config is required")
	}

	d := Defaults{
		SampleCount:        cfg.DefaultSamples,
		MaxSamples:         cfg.MaxSamples,
		HomeFieldAdvantage: cfg.HomeFieldAdvantage,
		HomeScoreStdDev:    cfg.HomeScoreStdDev,
		AwayScoreStdDev:    cfg.AwayScoreStdDev,
		Workers:            cfg.Workers,
		HistogramBins:      cfg.HistogramBins,
	}
	if d.HistogramBins <= 0 {
		d.HistogramBins = DefaultHistogramBins
	}

	return d, d.Validate()
}

// Validate validates simulation default parameters
func (d Defaults) Validate() error {
	if d.SampleCount <= 0 {
		return fmt.Errorf("default sample count must be positive")
	}
	if d.MaxSamples < d.SampleCount {
		return fmt.Errorf("max samples must be at least the default sample count")
	}
	if d.HomeScoreStdDev <= 0 || d.AwayScoreStdDev <= 0 {
		return fmt.Errorf("score standard deviations must be positive")
	}
	if d.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// Resolve merges overrides onto the defaults. A sample count above MaxSamples is
// capped; everything else is checked by SimulationConfig.Validate.
func (d Defaults) Resolve(o Overrides) (models.SimulationConfig, error) {
	cfg := models.SimulationConfig{
		SampleCount:        d.SampleCount,
		HomeFieldAdvantage: d.HomeFieldAdvantage,
		HomeScoreStdDev:    d.HomeScoreStdDev,
		AwayScoreStdDev:    d.AwayScoreStdDev,
		Seed:               o.Seed,
		Workers:            d.Workers,
	}
	if o.SampleCount != nil {
		cfg.SampleCount = *o.SampleCount
	}
	if d.MaxSamples > 0 && cfg.SampleCount > d.MaxSamples {
		cfg.SampleCount = d.MaxSamples
	}
	if o.HomeFieldAdvantage != nil {
		cfg.HomeFieldAdvantage = *o.HomeFieldAdvantage
	}
	if o.HomeScoreStdDev != nil {
		cfg.HomeScoreStdDev = *o.HomeScoreStdDev
	}
	if o.AwayScoreStdDev != nil {
		cfg.AwayScoreStdDev = *o.AwayScoreStdDev
	}

	line, err := models.ParseMarketLine(o.MarketLine)
	if err != nil {
		return models.SimulationConfig{}, err
	}
	cfg.MarketLine = line

	return cfg, cfg.Validate()
}
