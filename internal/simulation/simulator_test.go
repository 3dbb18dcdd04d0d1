package simulation

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spread-sim/internal/models"
)

func newTestSimulator() (*Simulator, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	return NewSimulator(log), buf
}

func defaultRunConfig(samples int, seed int64) models.SimulationConfig {
	return models.SimulationConfig{
		SampleCount:        samples,
		HomeFieldAdvantage: 1.5,
		HomeScoreStdDev:    7,
		AwayScoreStdDev:    6,
		Seed:               seed,
	}
}

func TestSimulatorRunEndToEnd(t *testing.T) {
	sim, buf := newTestSimulator()
	home := homeFavorite(t)
	away := awayUnderdog(t)

	result, err := sim.Run(context.Background(), home, away, defaultRunConfig(100000, 20240908))
	require.NoError(t, err)

	assert.InDelta(t, 4.5, result.ModelSpread, 1e-9)
	assert.Equal(t, 100000, result.SampleCount)
	assert.Len(t, result.Margins, 100000)
	assert.InDelta(t, 6.0, result.AverageMargin, 0.2)
	assert.InDelta(t, 0.564, result.HomeCoverProbability, 0.02)
	assert.InDelta(t, result.ExpectedHomeCoverProbability, result.HomeCoverProbability, 0.02)
	assert.InDelta(t, 1.0, result.HomeCoverProbability+result.AwayCoverProbability+result.PushProbability, 1e-9)
	assert.Equal(t, int64(20240908), result.Seed)

	require.NotNil(t, result.Inputs)
	assert.Equal(t, "KC", result.Inputs.HomeCode)
	assert.InDelta(t, 27.0, result.Inputs.HomePPG, 1e-9)
	assert.InDelta(t, 21.0, result.Inputs.AwayPPG, 1e-9)

	assert.Contains(t, buf.String(), "Simulation completed")
}

func TestSimulatorRunSeededIsReproducible(t *testing.T) {
	sim, _ := newTestSimulator()
	home := homeFavorite(t)
	away := awayUnderdog(t)

	a, err := sim.Run(context.Background(), home, away, defaultRunConfig(2000, 7))
	require.NoError(t, err)
	b, err := sim.Run(context.Background(), home, away, defaultRunConfig(2000, 7))
	require.NoError(t, err)

	assert.Equal(t, a.Margins, b.Margins)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSimulatorRunParallelMatchesAcrossWorkers(t *testing.T) {
	sim, _ := newTestSimulator()
	home := homeFavorite(t)
	away := awayUnderdog(t)

	cfg := defaultRunConfig(20000, 11)
	cfg.Workers = 2
	a, err := sim.Run(context.Background(), home, away, cfg)
	require.NoError(t, err)

	cfg.Workers = 6
	b, err := sim.Run(context.Background(), home, away, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Margins, b.Margins)
}

func TestSimulatorRunWithMarketLine(t *testing.T) {
	sim, buf := newTestSimulator()
	line := 3.0
	cfg := defaultRunConfig(50000, 5)
	cfg.MarketLine = &line

	result, err := sim.Run(context.Background(), homeFavorite(t), awayUnderdog(t), cfg)
	require.NoError(t, err)
	require.NotNil(t, result.Market)

	// Margin ~ N(6, 9.22) so P(X > 3) is about 0.626
	assert.InDelta(t, 0.626, result.Market.CoverProbability, 0.02)
	assert.Equal(t, models.EdgeSignalHome, result.Market.Signal)
	assert.Contains(t, buf.String(), "home_edge")
}

func TestSimulatorRunRejectsBadConfig(t *testing.T) {
	sim, buf := newTestSimulator()

	cfg := defaultRunConfig(0, 1)
	_, err := sim.Run(context.Background(), homeFavorite(t), awayUnderdog(t), cfg)
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))
	assert.Contains(t, buf.String(), "rejected")

	cfg = defaultRunConfig(100, 1)
	cfg.AwayScoreStdDev = 0
	_, err = sim.Run(context.Background(), homeFavorite(t), awayUnderdog(t), cfg)
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))
}

func TestSimulatorRunRejectsMissingTeam(t *testing.T) {
	sim, _ := newTestSimulator()

	_, err := sim.Run(context.Background(), nil, awayUnderdog(t), defaultRunConfig(100, 1))
	require.Error(t, err)
	assert.True(t, models.IsMissingDataError(err))
}
