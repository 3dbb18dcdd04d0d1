// Package report renders simulation results for terminal output.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/spread-sim/internal/models"
	"github.com/yourusername/spread-sim/internal/simulation"
)

const (
	// DefaultMarginsShown is the number of leading margins printed with ShowMargins
	DefaultMarginsShown = 50
	defaultBarWidth     = 40
)

// Options controls the optional sections of the console report
type Options struct {
	ShowMargins   bool
	MarginsShown  int
	HistogramBins int
	BarWidth      int
}

// GenerateConsoleReport formats a simulation result for terminal output
func GenerateConsoleReport(result *models.SimulationResult, opts Options) string {
	var builder strings.Builder

	title := "Model Results"
	if result.Inputs != nil {
		title = fmt.Sprintf("Model Results: %s (home) vs %s (away)", result.Inputs.HomeCode, result.Inputs.AwayCode)
	}
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", len(title)) + "\n")
	builder.WriteString(fmt.Sprintf("Model spread (home): %+.1f\n", result.ModelSpread))
	builder.WriteString(fmt.Sprintf("Avg simulated margin: %.2f\n", result.AverageMargin))
	builder.WriteString(fmt.Sprintf("Home covers (model): %.1f%%\n", result.HomeCoverProbability*100))
	builder.WriteString(fmt.Sprintf("Away covers (model): %.1f%%\n", result.AwayCoverProbability*100))
	if result.PushProbability > 0 {
		builder.WriteString(fmt.Sprintf("Push (model): %.1f%%\n", result.PushProbability*100))
	}
	if result.Inputs != nil {
		builder.WriteString(fmt.Sprintf("Home team ppg: %.2f, Away team ppg: %.2f\n", result.Inputs.HomePPG, result.Inputs.AwayPPG))
		builder.WriteString(fmt.Sprintf("Home rating: %.2f, Away rating: %.2f\n", result.Inputs.HomeRating, result.Inputs.AwayRating))
	}
	builder.WriteString(fmt.Sprintf("Samples: %d\n", result.SampleCount))

	if result.Market != nil {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Probability home covers sportsbook line (%+.1f): %.1f%%\n",
			result.Market.Line, result.Market.CoverProbability*100))
		builder.WriteString(EdgeMessage(result.Market) + "\n")
	}

	builder.WriteString("\nDistribution of simulated margins (home - away)\n")
	d := result.Distribution
	builder.WriteString(fmt.Sprintf("std %.2f  min %.1f  median %.1f  max %.1f\n", d.StdDev, d.Min, d.Median, d.Max))
	builder.WriteString(RenderHistogram(simulation.Histogram(result.Margins, opts.HistogramBins), opts.BarWidth))

	if opts.ShowMargins {
		n := opts.MarginsShown
		if n <= 0 {
			n = DefaultMarginsShown
		}
		builder.WriteString(fmt.Sprintf("\nFirst %d simulated margins (home - away):\n", min(n, len(result.Margins))))
		builder.WriteString(FormatMargins(result.SampleMargins(n)) + "\n")
	}

	return builder.String()
}

// EdgeMessage describes a market comparison in words
func EdgeMessage(m *models.MarketComparison) string {
	pp := m.Edge * 100
	switch m.Signal {
	case models.EdgeSignalHome:
		return fmt.Sprintf("Model suggests a possible positive edge for the home side (%.1f percentage points advantage)", pp)
	case models.EdgeSignalMarketFavorsHome:
		return fmt.Sprintf("Model suggests market favors the home side more than model (edge %.1f pp)", pp)
	default:
		return fmt.Sprintf("No strong edge vs market (edge %.1f percentage points)", pp)
	}
}

// FormatMargins renders margins rounded to one decimal as a bracketed list
func FormatMargins(margins []float64) string {
	parts := make([]string, len(margins))
	for i, m := range margins {
		rounded := math.Round(m*10) / 10
		if rounded == 0 {
			rounded = 0 // drop negative zero
		}
		parts[i] = fmt.Sprintf("%.1f", rounded)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RenderHistogram draws one bar per bin scaled to the tallest bin
func RenderHistogram(bins []models.HistogramBin, width int) string {
	if len(bins) == 0 {
		return ""
	}
	if width <= 0 {
		width = defaultBarWidth
	}
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}

	var builder strings.Builder
	for _, b := range bins {
		bar := 0
		if peak > 0 {
			bar = int(math.Round(float64(b.Count) / float64(peak) * float64(width)))
		}
		builder.WriteString(fmt.Sprintf("%7.1f to %7.1f | %-*s %d\n", b.Lower, b.Upper, width, strings.Repeat("#", bar), b.Count))
	}
	return builder.String()
}
