// Package logger provides statistics data logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// DataLogger provides dedicated logging for season statistics loads.
type DataLogger struct {
	*logrus.Entry
}

// NewDataLogger creates a new data logger.
func NewDataLogger(baseLogger *logrus.Logger) *DataLogger {
	return &DataLogger{
		Entry: baseLogger.WithField("component", "stats"),
	}
}

// LogSeasonLoad logs a season fetched from a statistics provider.
func (dl *DataLogger) LogSeasonLoad(source string, season, teams, efficiencyTeams int, durationMs float64) {
	dl.WithFields(logrus.Fields{
		"source":           source,
		"season":           season,
		"teams":            teams,
		"efficiency_teams": efficiencyTeams,
		"duration_ms":      durationMs,
	}).Info("Season statistics loaded")
}

// LogSeasonLoadFailed logs a provider failure.
func (dl *DataLogger) LogSeasonLoadFailed(source string, season int, err error) {
	dl.WithFields(logrus.Fields{
		"source": source,
		"season": season,
	}).WithError(err).Error("Season statistics load failed")
}

// LogCacheRefresh logs a scheduled cache refresh.
func (dl *DataLogger) LogCacheRefresh(season int, backend string, success bool) {
	dl.WithFields(logrus.Fields{
		"season":  season,
		"backend": backend,
		"success": success,
	}).Info("Season cache refreshed")
}
