// Package logger provides simulation-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for simulation runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogSimulationRun logs a completed simulation run.
func (sl *SimulationLogger) LogSimulationRun(runID, homeCode, awayCode string, samples int, modelSpread, averageMargin, homeCover, awayCover, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"run_id":                 runID,
		"home":                   homeCode,
		"away":                   awayCode,
		"samples":                samples,
		"model_spread":           modelSpread,
		"average_margin":         averageMargin,
		"home_cover_probability": homeCover,
		"away_cover_probability": awayCover,
		"duration_ms":            durationMs,
	}).Info("Simulation completed")
}

// LogEdgeSignal logs the comparison against a market line.
func (sl *SimulationLogger) LogEdgeSignal(runID string, marketLine, coverProbability, edge float64, signal string) {
	sl.WithFields(logrus.Fields{
		"run_id":            runID,
		"market_line":       marketLine,
		"cover_probability": coverProbability,
		"edge":              edge,
		"signal":            signal,
	}).Info("Market line compared")
}

// LogSimulationRejected logs a request rejected before sampling.
func (sl *SimulationLogger) LogSimulationRejected(homeCode, awayCode string, err error) {
	sl.WithFields(logrus.Fields{
		"home": homeCode,
		"away": awayCode,
	}).WithError(err).Warn("Simulation rejected")
}
