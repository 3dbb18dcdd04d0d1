package simulation

import (
	"math"
	"time"

	"github.com/atgjack/prob"
	"github.com/google/uuid"

	"github.com/yourusername/spread-sim/internal/models"
)

// EdgeThreshold is the distance from 50% needed before an edge is reported
const EdgeThreshold = 0.03

// Analyze summarizes margins against the model spread and, optionally, a market line.
// Margins exactly equal to the spread count toward neither cover probability.
func Analyze(margins []float64, modelSpread float64, marketLine *float64) (*models.SimulationResult, error) {
	if len(margins) == 0 {
		return nil, models.NewInvalidInputError("margins", "margin sequence is empty")
	}
	if !finite(modelSpread) {
		return nil, models.NewInvalidInputError("model_spread", "must be finite")
	}

	mean, _ := meanStd(margins)
	home := probabilityAbove(margins, modelSpread)
	away := probabilityBelow(margins, modelSpread)

	result := &models.SimulationResult{
		ID:                   uuid.New(),
		ModelSpread:          modelSpread,
		Margins:              margins,
		SampleCount:          len(margins),
		AverageMargin:        mean,
		HomeCoverProbability: home,
		AwayCoverProbability: away,
		PushProbability:      math.Max(0, 1-home-away),
		Distribution:         Summarize(margins),
		CreatedAt:            time.Now().UTC(),
	}

	if marketLine != nil {
		if !finite(*marketLine) {
			return nil, models.NewConfigurationError("market_line", "must be finite")
		}
		cover := probabilityAbove(margins, *marketLine)
		edge := cover - 0.5
		result.Market = &models.MarketComparison{
			Line:             *marketLine,
			CoverProbability: cover,
			Edge:             edge,
			Signal:           ClassifyEdge(edge),
		}
	}

	return result, nil
}

// ClassifyEdge maps an edge (cover probability minus 0.5) onto a signal
func ClassifyEdge(edge float64) models.EdgeSignal {
	switch {
	case edge > EdgeThreshold:
		return models.EdgeSignalHome
	case edge < -EdgeThreshold:
		return models.EdgeSignalMarketFavorsHome
	default:
		return models.EdgeSignalNeutral
	}
}

// ExpectedHomeCoverProbability is the closed-form counterpart of the simulated home cover
// probability: P(X > spread) for X ~ Normal(homeMean-awayMean, sqrt(homeSD^2+awaySD^2)).
func ExpectedHomeCoverProbability(homeMean, homeStdDev, awayMean, awayStdDev, spread float64) float64 {
	dist := prob.Normal{Mu: homeMean - awayMean, Sigma: math.Hypot(homeStdDev, awayStdDev)}
	return 1 - dist.Cdf(spread)
}
