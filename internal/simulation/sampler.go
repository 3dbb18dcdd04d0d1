package simulation

import (
	"context"
	"math"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/spread-sim/internal/models"
)

// chunkSize is the fixed partition used by SampleMarginsParallel.
// It does not depend on the worker count so seeded output is stable.
const chunkSize = 4096

// RandomSource supplies standard normal draws. *rand.Rand satisfies it.
type RandomSource interface {
	NormFloat64() float64
}

// NewRandomSource returns a source seeded with seed, or a time-seeded one when seed is 0
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// SampleMargins draws count paired home/away scores and returns home minus away per trial.
// Each trial takes the home draw then the away draw from rng.
func SampleMargins(homeMean, homeStdDev, awayMean, awayStdDev float64, count int, rng RandomSource) ([]float64, error) {
	if err := validateSamplerInputs(homeMean, homeStdDev, awayMean, awayStdDev, count); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, models.NewConfigurationError("random_source", "random source is required")
	}

	margins := make([]float64, count)
	fillMargins(margins, homeMean, homeStdDev, awayMean, awayStdDev, rng)
	return margins, nil
}

// SampleMarginsParallel splits the sample sequence into fixed chunks, each with its own
// source derived from seed and the chunk index. Output for a fixed non-zero seed is the
// same for any worker count.
func SampleMarginsParallel(ctx context.Context, homeMean, homeStdDev, awayMean, awayStdDev float64, count int, seed int64, workers int) ([]float64, error) {
	if err := validateSamplerInputs(homeMean, homeStdDev, awayMean, awayStdDev, count); err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if workers < 1 {
		workers = 1
	}

	margins := make([]float64, count)
	chunks := (count + chunkSize - 1) / chunkSize

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k := 0; k < chunks; k++ {
		start := k * chunkSize
		end := min(start+chunkSize, count)
		chunkSeed := deriveChunkSeed(seed, k)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(chunkSeed))
			fillMargins(margins[start:end], homeMean, homeStdDev, awayMean, awayStdDev, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return margins, nil
}

func fillMargins(dst []float64, homeMean, homeStdDev, awayMean, awayStdDev float64, rng RandomSource) {
	for i := range dst {
		home := rng.NormFloat64()*homeStdDev + homeMean
		away := rng.NormFloat64()*awayStdDev + awayMean
		dst[i] = home - away
	}
}

// deriveChunkSeed mixes the chunk index into the base seed (splitmix64 finalizer)
func deriveChunkSeed(seed int64, chunk int) int64 {
	z := uint64(seed) + uint64(chunk+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

func validateSamplerInputs(homeMean, homeStdDev, awayMean, awayStdDev float64, count int) error {
	if count <= 0 {
		return models.NewConfigurationError("count", "must be positive, got %d", count)
	}
	if !finite(homeMean) {
		return models.NewConfigurationError("home_mean", "must be finite")
	}
	if !finite(awayMean) {
		return models.NewConfigurationError("away_mean", "must be finite")
	}
	if !finite(homeStdDev) || homeStdDev <= 0 {
		return models.NewConfigurationError("home_stddev", "must be positive, got %v", homeStdDev)
	}
	if !finite(awayStdDev) || awayStdDev <= 0 {
		return models.NewConfigurationError("away_stddev", "must be positive, got %v", awayStdDev)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
