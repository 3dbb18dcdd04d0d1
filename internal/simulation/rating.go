package simulation

import (
	"github.com/yourusername/spread-sim/internal/models"
)

// RatingScale converts a net rating into spread-like points
const RatingScale = 100.0

// Rating returns the team's power rating in points
func Rating(team *models.TeamStatsRecord) float64 {
	return team.NetRating * RatingScale
}

// ComputeModelSpread returns the points by which the home team is favored.
// Positive favors home. With zero home field advantage the result is exactly
// antisymmetric under swapping home and away.
func ComputeModelSpread(home, away *models.TeamStatsRecord, homeFieldAdvantage float64) (float64, error) {
	if err := home.Validate(); err != nil {
		return 0, err
	}
	if err := away.Validate(); err != nil {
		return 0, err
	}
	return Rating(home) - Rating(away) + homeFieldAdvantage, nil
}
