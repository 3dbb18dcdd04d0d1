package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndLive(t *testing.T) {
	s := NewServer(Config{ServiceName: "spread-sim", Version: "1.2.0", Commit: "abc123"})
	h := s.Handler()

	rec := get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.0", resp.Version)
	assert.NotEmpty(t, resp.Timestamp)

	assert.Equal(t, http.StatusOK, get(t, h, "/live").Code)
}

func TestReadyRequiresSetReady(t *testing.T) {
	s := NewServer(Config{ServiceName: "spread-sim"})
	h := s.Handler()

	rec := get(t, h, "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.SetReady(true)
	rec = get(t, h, "/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyRunsChecks(t *testing.T) {
	s := NewServer(Config{ServiceName: "spread-sim"})
	s.SetReady(true)
	s.AddPinger("database", stubPinger{})
	s.AddPinger("cache", stubPinger{err: errors.New("connection refused")})
	s.AddCheck("provider", func(ctx context.Context) error { return nil })

	rec := get(t, s.Handler(), "/ready")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["provider"])
	assert.Equal(t, "error: connection refused", resp.Checks["cache"])

	s.AddPinger("cache", stubPinger{})
	assert.Equal(t, http.StatusOK, get(t, s.Handler(), "/ready").Code)
}
