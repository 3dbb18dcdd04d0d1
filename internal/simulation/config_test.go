package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spread-sim/internal/config"
	"github.com/yourusername/spread-sim/internal/models"
)

func testDefaults(t *testing.T) Defaults {
	t.Helper()
	d, err := FromConfig(&config.SimulationConfig{
		DefaultSamples:     10000,
		MaxSamples:         50000,
		HomeFieldAdvantage: 1.5,
		HomeScoreStdDev:    7,
		AwayScoreStdDev:    6,
		Workers:            4,
	})
	require.NoError(t, err)
	return d
}

func TestFromConfig(t *testing.T) {
	d := testDefaults(t)
	assert.Equal(t, 10000, d.SampleCount)
	assert.Equal(t, DefaultHistogramBins, d.HistogramBins)

	_, err := FromConfig(nil)
	assert.Error(t, err)

	_, err = FromConfig(&config.SimulationConfig{DefaultSamples: 100, MaxSamples: 10, HomeScoreStdDev: 7, AwayScoreStdDev: 6})
	assert.Error(t, err)
}

func TestResolveUsesDefaults(t *testing.T) {
	cfg, err := testDefaults(t).Resolve(Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 10000, cfg.SampleCount)
	assert.Equal(t, 1.5, cfg.HomeFieldAdvantage)
	assert.Equal(t, 7.0, cfg.HomeScoreStdDev)
	assert.Equal(t, 6.0, cfg.AwayScoreStdDev)
	assert.Equal(t, 4, cfg.Workers)
	assert.Nil(t, cfg.MarketLine)
}

func TestResolveOverrides(t *testing.T) {
	samples := 80000
	hfa := 0.0
	sd := 10.0

	cfg, err := testDefaults(t).Resolve(Overrides{
		SampleCount:        &samples,
		HomeFieldAdvantage: &hfa,
		AwayScoreStdDev:    &sd,
		MarketLine:         "-2.5",
		Seed:               9,
	})
	require.NoError(t, err)

	assert.Equal(t, 50000, cfg.SampleCount)
	assert.Equal(t, 0.0, cfg.HomeFieldAdvantage)
	assert.Equal(t, 10.0, cfg.AwayScoreStdDev)
	assert.Equal(t, int64(9), cfg.Seed)
	require.NotNil(t, cfg.MarketLine)
	assert.Equal(t, -2.5, *cfg.MarketLine)
}

func TestResolveRejectsInvalid(t *testing.T) {
	d := testDefaults(t)

	_, err := d.Resolve(Overrides{MarketLine: "three"})
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))

	zero := 0.0
	_, err = d.Resolve(Overrides{HomeScoreStdDev: &zero})
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))

	negative := -1
	_, err = d.Resolve(Overrides{SampleCount: &negative})
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))
}
