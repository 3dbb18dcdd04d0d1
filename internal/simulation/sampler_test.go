package simulation

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/spread-sim/internal/models"
)

type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) NormFloat64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func TestSampleMarginsLength(t *testing.T) {
	for _, n := range []int{1, 7, 10000} {
		margins, err := SampleMargins(27, 7, 21, 6, n, NewRandomSource(1))
		require.NoError(t, err)
		assert.Len(t, margins, n)
	}
}

func TestSampleMarginsDrawOrder(t *testing.T) {
	src := &sequenceSource{values: []float64{1, -1, 0, 2}}

	margins, err := SampleMargins(27, 7, 21, 6, 2, src)
	require.NoError(t, err)
	// (27+7) - (21-6) then 27 - (21+12)
	assert.Equal(t, []float64{19, -6}, margins)
}

func TestSampleMarginsSeededIsReproducible(t *testing.T) {
	a, err := SampleMargins(24, 7, 20, 6, 500, NewRandomSource(99))
	require.NoError(t, err)
	b, err := SampleMargins(24, 7, 20, 6, 500, NewRandomSource(99))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleMarginsLawOfLargeNumbers(t *testing.T) {
	const n = 100000
	margins, err := SampleMargins(27, 7, 21, 6, n, NewRandomSource(2024))
	require.NoError(t, err)

	mean, std := meanStd(margins)
	expectedStd := math.Hypot(7, 6)
	standardError := expectedStd / math.Sqrt(n)

	assert.InDelta(t, 6.0, mean, 4*standardError)
	assert.InDelta(t, expectedStd, std, 0.1)
}

func TestSampleMarginsRejectsBadInputs(t *testing.T) {
	tests := []struct {
		name     string
		homeSD   float64
		awaySD   float64
		homeMean float64
		count    int
		field    string
	}{
		{name: "zero count", homeSD: 7, awaySD: 6, homeMean: 27, count: 0, field: "count"},
		{name: "negative count", homeSD: 7, awaySD: 6, homeMean: 27, count: -5, field: "count"},
		{name: "zero home stddev", homeSD: 0, awaySD: 6, homeMean: 27, count: 10, field: "home_stddev"},
		{name: "negative away stddev", homeSD: 7, awaySD: -1, homeMean: 27, count: 10, field: "away_stddev"},
		{name: "nan mean", homeSD: 7, awaySD: 6, homeMean: math.NaN(), count: 10, field: "home_mean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleMargins(tt.homeMean, tt.homeSD, 21, tt.awaySD, tt.count, NewRandomSource(1))
			require.Error(t, err)
			assert.True(t, models.IsConfigurationError(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSampleMarginsRequiresSource(t *testing.T) {
	_, err := SampleMargins(27, 7, 21, 6, 10, nil)
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))
}

func TestSampleMarginsParallelIndependentOfWorkers(t *testing.T) {
	ctx := context.Background()
	const n = 3*chunkSize + 17

	base, err := SampleMarginsParallel(ctx, 27, 7, 21, 6, n, 42, 1)
	require.NoError(t, err)
	require.Len(t, base, n)

	for _, workers := range []int{2, 3, 8} {
		margins, err := SampleMarginsParallel(ctx, 27, 7, 21, 6, n, 42, workers)
		require.NoError(t, err)
		assert.Equal(t, base, margins, "workers=%d", workers)
	}
}

func TestSampleMarginsParallelCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SampleMarginsParallel(ctx, 27, 7, 21, 6, 10*chunkSize, 42, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleMarginsParallelValidates(t *testing.T) {
	_, err := SampleMarginsParallel(context.Background(), 27, 0, 21, 6, 100, 42, 4)
	require.Error(t, err)
	assert.True(t, models.IsConfigurationError(err))
}

func TestDeriveChunkSeedDistinct(t *testing.T) {
	seen := make(map[int64]bool)
	for k := 0; k < 1000; k++ {
		s := deriveChunkSeed(42, k)
		assert.False(t, seen[s], "duplicate seed for chunk %d", k)
		seen[s] = true
	}
}
