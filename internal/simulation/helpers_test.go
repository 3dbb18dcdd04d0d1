package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/spread-sim/internal/models"
)

func float(v float64) *float64 { return &v }

func newTeam(t *testing.T, code string, pointsFor, pointsAgainst float64, games int, off, def *float64) *models.TeamStatsRecord {
	t.Helper()
	record, err := models.NewTeamStatsRecord(models.TeamSeasonTotals{
		TeamCode:            code,
		Season:              2024,
		PointsFor:           pointsFor,
		PointsAgainst:       pointsAgainst,
		GamesPlayed:         games,
		OffensiveEfficiency: off,
		DefensiveEfficiency: def,
	})
	require.NoError(t, err)
	return record
}

// homeFavorite scores 27 per game with a net rating of 0.03
func homeFavorite(t *testing.T) *models.TeamStatsRecord {
	return newTeam(t, "KC", 459, 340, 17, float(0.10), float(0.07))
}

// awayUnderdog scores 21 per game with a net rating of 0
func awayUnderdog(t *testing.T) *models.TeamStatsRecord {
	return newTeam(t, "DEN", 357, 357, 17, float(0.05), float(0.05))
}
