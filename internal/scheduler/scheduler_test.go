package scheduler

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spread-sim/internal/models"
)

type fakeRefresher struct {
	mu      sync.Mutex
	calls   []int
	failFor map[int]bool
}

func (f *fakeRefresher) Refresh(ctx context.Context, season int) ([]*models.TeamStatsRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, season)
	if f.failFor[season] {
		return nil, errors.New("provider unavailable")
	}
	return []*models.TeamStatsRecord{{TeamCode: "KC", Season: season}}, nil
}

func newTestScheduler(refresher SeasonRefresher) (*Scheduler, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	return NewScheduler(refresher, log), buf
}

func TestScheduleSeasonRefresh(t *testing.T) {
	s, _ := newTestScheduler(&fakeRefresher{})

	require.NoError(t, s.ScheduleSeasonRefresh("0 */6 * * *", []int{2024}))
	assert.Len(t, s.Entries(), 1)
	assert.True(t, s.GetNextRun().IsZero(), "next run is only known while running")

	assert.Error(t, s.ScheduleSeasonRefresh("not a cron", []int{2024}))
	assert.Error(t, s.ScheduleSeasonRefresh("0 * * * *", nil))
}

func TestSchedulerStartStop(t *testing.T) {
	s, _ := newTestScheduler(&fakeRefresher{})
	assert.Error(t, s.Start(), "no jobs scheduled")

	require.NoError(t, s.ScheduleSeasonRefresh("@every 1h", []int{2024}))
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleSeasonRefresh("@every 1h", []int{2023}))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestRefreshSeasonsContinuesPastFailures(t *testing.T) {
	refresher := &fakeRefresher{failFor: map[int]bool{2023: true}}
	s, buf := newTestScheduler(refresher)

	failed := s.RefreshSeasons(context.Background(), []int{2022, 2023, 2024})

	assert.Equal(t, 1, failed)
	assert.Equal(t, []int{2022, 2023, 2024}, refresher.calls)
	assert.Contains(t, buf.String(), "Scheduled season refresh failed")
	assert.Contains(t, buf.String(), "Scheduled season refresh completed")
}

func TestRefreshSeasonsCancelled(t *testing.T) {
	refresher := &fakeRefresher{}
	s, _ := newTestScheduler(refresher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, 1, s.RefreshSeasons(ctx, []int{2024, 2023}))
	assert.Empty(t, refresher.calls)
}
