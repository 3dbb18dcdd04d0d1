package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EdgeSignal classifies the model's cover probability against a market line
type EdgeSignal string

const (
	EdgeSignalHome             EdgeSignal = "home_edge"
	EdgeSignalMarketFavorsHome EdgeSignal = "market_favors_home"
	EdgeSignalNeutral          EdgeSignal = "neutral"
)

// SimulationConfig holds the knobs of a single simulation request
type SimulationConfig struct {
	SampleCount        int      `json:"sample_count"`
	HomeFieldAdvantage float64  `json:"home_field_advantage"`
	HomeScoreStdDev    float64  `json:"home_score_stddev"`
	AwayScoreStdDev    float64  `json:"away_score_stddev"`
	MarketLine         *float64 `json:"market_line,omitempty"` // positive = home favored
	Seed               int64    `json:"seed,omitempty"`        // 0 = fresh randomness
	Workers            int      `json:"workers,omitempty"`     // <= 1 = sequential
}

// Validate rejects configurations that must not reach the sampler
func (c SimulationConfig) Validate() error {
	if c.SampleCount <= 0 {
		return NewConfigurationError("sample_count", "must be positive, got %d", c.SampleCount)
	}
	if !isFinite(c.HomeFieldAdvantage) {
		return NewConfigurationError("home_field_advantage", "must be finite")
	}
	if !isFinite(c.HomeScoreStdDev) || c.HomeScoreStdDev <= 0 {
		return NewConfigurationError("home_score_stddev", "must be positive, got %v", c.HomeScoreStdDev)
	}
	if !isFinite(c.AwayScoreStdDev) || c.AwayScoreStdDev <= 0 {
		return NewConfigurationError("away_score_stddev", "must be positive, got %v", c.AwayScoreStdDev)
	}
	if c.MarketLine != nil && !isFinite(*c.MarketLine) {
		return NewConfigurationError("market_line", "must be finite")
	}
	if c.Workers < 0 {
		return NewConfigurationError("workers", "cannot be negative")
	}
	return nil
}

// ParseMarketLine parses an optional sportsbook line such as "3.5" or "-2".
// Blank input means no line was supplied.
func ParseMarketLine(input string) (*float64, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return nil, &SimulationError{
			Kind:    ErrConfiguration,
			Field:   "market_line",
			Message: "enter a number like 3.5 or -2",
			Err:     err,
		}
	}
	line := d.InexactFloat64()
	return &line, nil
}

// MarketComparison is present when a market line was supplied
type MarketComparison struct {
	Line             float64    `json:"line"`
	CoverProbability float64    `json:"cover_probability"`
	Edge             float64    `json:"edge"`
	Signal           EdgeSignal `json:"signal"`
}

// DistributionSummary describes the simulated margin distribution
type DistributionSummary struct {
	StdDev              float64            `json:"std_dev"`
	Min                 float64            `json:"min"`
	Max                 float64            `json:"max"`
	Median              float64            `json:"median"`
	Percentiles         map[string]float64 `json:"percentiles"`
	ConfidenceIntervals map[string]float64 `json:"confidence_intervals"`
}

// HistogramBin is one bucket of the margin histogram, [Lower, Upper)
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// MatchupInputs echoes the per-team numbers that fed the model
type MatchupInputs struct {
	HomeCode   string  `json:"home_code"`
	AwayCode   string  `json:"away_code"`
	HomePPG    float64 `json:"home_ppg"`
	AwayPPG    float64 `json:"away_ppg"`
	HomeRating float64 `json:"home_rating"`
	AwayRating float64 `json:"away_rating"`
}

// SimulationResult is the immutable outcome of one simulation run.
// Cover probabilities are pure functions of Margins and ModelSpread.
type SimulationResult struct {
	ID                           uuid.UUID           `json:"id"`
	ModelSpread                  float64             `json:"model_spread"`
	Margins                      []float64           `json:"margins,omitempty"`
	SampleCount                  int                 `json:"sample_count"`
	AverageMargin                float64             `json:"average_margin"`
	HomeCoverProbability         float64             `json:"home_cover_probability"`
	AwayCoverProbability         float64             `json:"away_cover_probability"`
	PushProbability              float64             `json:"push_probability"`
	ExpectedHomeCoverProbability float64             `json:"expected_home_cover_probability,omitempty"`
	Market                       *MarketComparison   `json:"market,omitempty"`
	Distribution                 DistributionSummary `json:"distribution"`
	Inputs                       *MatchupInputs      `json:"inputs,omitempty"`
	Seed                         int64               `json:"seed,omitempty"`
	Duration                     time.Duration       `json:"duration"`
	CreatedAt                    time.Time           `json:"created_at"`
}

// MarketCoverProbability returns the market cover probability when a line was supplied
func (r *SimulationResult) MarketCoverProbability() (float64, bool) {
	if r.Market == nil {
		return 0, false
	}
	return r.Market.CoverProbability, true
}

// SampleMargins returns up to n leading margins
func (r *SimulationResult) SampleMargins(n int) []float64 {
	if n > len(r.Margins) {
		n = len(r.Margins)
	}
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	copy(out, r.Margins[:n])
	return out
}
