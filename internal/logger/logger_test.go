package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("debug", "development", buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	log = NewLoggerWithOutput("bogus", "development", buf)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level")
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("info", "production", buf)
	log.Info("hello")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "hello", entry["msg"])
}

func TestSimulationLoggerRun(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogSimulationRun("run-1", "KC", "BUF", 10000, 4.5, 6.01, 0.56, 0.44, 12.5)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "simulation", entry["component"])
	assert.Equal(t, "KC", entry["home"])
	assert.Equal(t, float64(10000), entry["samples"])
	assert.Equal(t, 4.5, entry["model_spread"])
}

func TestSimulationLoggerEdgeSignal(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogEdgeSignal("run-1", 3.5, 0.55, 0.05, "home_edge")

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "home_edge", entry["signal"])
	assert.Equal(t, 3.5, entry["market_line"])
}

func TestSimulationLoggerRejected(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogSimulationRejected("KC", "KC", errors.New("same team"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "same team", entry["error"])
}

func TestDataLoggerSeasonLoad(t *testing.T) {
	log, buf := setupTestLogger()
	dataLogger := NewDataLogger(log)

	dataLogger.LogSeasonLoad("stats_api", 2024, 32, 30, 120)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "stats", entry["component"])
	assert.Equal(t, float64(32), entry["teams"])
	assert.Equal(t, float64(2024), entry["season"])
}

func TestDataLoggerLoadFailed(t *testing.T) {
	log, buf := setupTestLogger()
	dataLogger := NewDataLogger(log)

	dataLogger.LogSeasonLoadFailed("postgres", 2023, errors.New("connection refused"))

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "postgres", entry["source"])
}

func TestDataLoggerCacheRefresh(t *testing.T) {
	log, buf := setupTestLogger()
	dataLogger := NewDataLogger(log)

	dataLogger.LogCacheRefresh(2024, "redis", true)

	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "redis", entry["backend"])
	assert.Equal(t, true, entry["success"])
}
