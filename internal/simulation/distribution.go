package simulation

import (
	"fmt"
	"math"
	"slices"

	"github.com/yourusername/spread-sim/internal/models"
)

const (
	// DefaultHistogramBins matches the default chart resolution
	DefaultHistogramBins = 50
	// MaxHistogramBins bounds caller-supplied bin counts
	MaxHistogramBins = 500
)

var (
	summaryPercentiles = []float64{0.05, 0.25, 0.75, 0.95}
	confidenceLevels   = []float64{0.9, 0.95, 0.99}
)

// Summarize computes spread and shape statistics of a margin distribution
func Summarize(margins []float64) models.DistributionSummary {
	if len(margins) == 0 {
		return models.DistributionSummary{}
	}
	sorted := slices.Clone(margins)
	slices.Sort(sorted)

	_, std := meanStd(margins)
	percentiles := make(map[string]float64, len(summaryPercentiles))
	for _, p := range summaryPercentiles {
		percentiles[formatPercent(p)] = percentileSorted(sorted, p)
	}

	return models.DistributionSummary{
		StdDev:              std,
		Min:                 sorted[0],
		Max:                 sorted[len(sorted)-1],
		Median:              percentileSorted(sorted, 0.5),
		Percentiles:         percentiles,
		ConfidenceIntervals: confidenceIntervalsSorted(sorted, confidenceLevels),
	}
}

// CalculateConfidenceIntervals returns the width of the central interval for each level
func CalculateConfidenceIntervals(distribution []float64, levels []float64) map[string]float64 {
	sorted := slices.Clone(distribution)
	slices.Sort(sorted)
	return confidenceIntervalsSorted(sorted, levels)
}

func confidenceIntervalsSorted(sorted []float64, levels []float64) map[string]float64 {
	results := make(map[string]float64, len(levels))
	for _, level := range levels {
		p := (1.0 - level) / 2.0
		low := percentileSorted(sorted, p)
		high := percentileSorted(sorted, 1.0-p)
		results[formatPercent(level)] = high - low
	}
	return results
}

// ValidateHistogramBins rejects bin counts outside [0, MaxHistogramBins].
// Zero selects the configured default.
func ValidateHistogramBins(bins int) error {
	if bins < 0 || bins > MaxHistogramBins {
		return models.NewConfigurationError("histogram_bins", "must be between 0 and %d, got %d", MaxHistogramBins, bins)
	}
	return nil
}

// Histogram buckets margins into equal-width bins over [min, max].
// The maximum value lands in the last bin. Bin counts above
// MaxHistogramBins are clamped.
func Histogram(margins []float64, bins int) []models.HistogramBin {
	if len(margins) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	bins = min(bins, MaxHistogramBins)
	lo, hi := margins[0], margins[0]
	for _, m := range margins {
		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}
	if hi == lo {
		return []models.HistogramBin{{Lower: lo, Upper: hi, Count: len(margins)}}
	}

	width := (hi - lo) / float64(bins)
	result := make([]models.HistogramBin, bins)
	for i := range result {
		result[i].Lower = lo + float64(i)*width
		result[i].Upper = lo + float64(i+1)*width
	}
	result[bins-1].Upper = hi
	for _, m := range margins {
		idx := int((m - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		result[idx].Count++
	}
	return result
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	// linear interpolation between closest ranks
	pos := math.Max(0, math.Min(1, p)) * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	return sorted[lower] + (pos-float64(lower))*(sorted[upper]-sorted[lower])
}

func probabilityAbove(values []float64, threshold float64) float64 {
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func probabilityBelow(values []float64, threshold float64) float64 {
	count := 0
	for _, v := range values {
		if v < threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func formatPercent(level float64) string {
	return fmt.Sprintf("%.0f%%", level*100)
}
