// Package simulation turns two teams' season statistics into a model spread and a
// Monte Carlo margin distribution with cover probabilities.
package simulation

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/spread-sim/internal/logger"
	"github.com/yourusername/spread-sim/internal/metrics"
	"github.com/yourusername/spread-sim/internal/models"
)

// Simulator runs the rating -> sampling -> analysis pipeline for one matchup per call.
// It holds no per-request state and is safe for concurrent use.
type Simulator struct {
	logger *logger.SimulationLogger
}

// NewSimulator creates a simulator that logs through log
func NewSimulator(log *logrus.Logger) *Simulator {
	return &Simulator{logger: logger.NewSimulationLogger(log)}
}

// Run simulates home against away. Sample means are each team's points per game.
func (s *Simulator) Run(ctx context.Context, home, away *models.TeamStatsRecord, cfg models.SimulationConfig) (*models.SimulationResult, error) {
	start := time.Now()

	result, err := s.run(ctx, home, away, cfg)
	if err != nil {
		metrics.RecordSimulation(statusFor(err), 0, 0, 0)
		s.logger.LogSimulationRejected(teamCode(home), teamCode(away), err)
		return nil, err
	}

	result.Duration = time.Since(start)
	metrics.RecordSimulation("success", result.SampleCount, result.ModelSpread, result.Duration.Seconds())
	s.logger.LogSimulationRun(
		result.ID.String(), home.TeamCode, away.TeamCode, result.SampleCount,
		result.ModelSpread, result.AverageMargin,
		result.HomeCoverProbability, result.AwayCoverProbability,
		float64(result.Duration.Microseconds())/1000.0,
	)
	if result.Market != nil {
		metrics.RecordEdgeSignal(string(result.Market.Signal))
		s.logger.LogEdgeSignal(result.ID.String(), result.Market.Line, result.Market.CoverProbability, result.Market.Edge, string(result.Market.Signal))
	}
	return result, nil
}

func (s *Simulator) run(ctx context.Context, home, away *models.TeamStatsRecord, cfg models.SimulationConfig) (*models.SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spread, err := ComputeModelSpread(home, away, cfg.HomeFieldAdvantage)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var margins []float64
	if cfg.Workers > 1 {
		margins, err = SampleMarginsParallel(ctx, home.PointsPerGame, cfg.HomeScoreStdDev, away.PointsPerGame, cfg.AwayScoreStdDev, cfg.SampleCount, seed, cfg.Workers)
	} else {
		margins, err = SampleMargins(home.PointsPerGame, cfg.HomeScoreStdDev, away.PointsPerGame, cfg.AwayScoreStdDev, cfg.SampleCount, NewRandomSource(seed))
	}
	if err != nil {
		return nil, err
	}

	result, err := Analyze(margins, spread, cfg.MarketLine)
	if err != nil {
		return nil, err
	}

	result.Seed = seed
	result.ExpectedHomeCoverProbability = ExpectedHomeCoverProbability(
		home.PointsPerGame, cfg.HomeScoreStdDev, away.PointsPerGame, cfg.AwayScoreStdDev, spread,
	)
	result.Inputs = &models.MatchupInputs{
		HomeCode:   home.TeamCode,
		AwayCode:   away.TeamCode,
		HomePPG:    home.PointsPerGame,
		AwayPPG:    away.PointsPerGame,
		HomeRating: Rating(home),
		AwayRating: Rating(away),
	}
	return result, nil
}

func statusFor(err error) string {
	if models.IsConfigurationError(err) || models.IsMissingDataError(err) || models.IsInvalidInputError(err) {
		return "rejected"
	}
	return "failure"
}

func teamCode(team *models.TeamStatsRecord) string {
	if team == nil {
		return ""
	}
	return team.TeamCode
}
