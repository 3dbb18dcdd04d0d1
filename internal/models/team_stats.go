package models

import (
	"math"
)

// NetRatingSource records which branch produced a team's net rating
type NetRatingSource string

const (
	NetRatingFromEfficiency       NetRatingSource = "efficiency"
	NetRatingFromPointDifferential NetRatingSource = "point_differential"
)

// pointDifferentialScale shrinks per-game point differential to efficiency-like magnitude
const pointDifferentialScale = 3.0

// TeamSeasonTotals holds raw season aggregates as delivered by a statistics provider
type TeamSeasonTotals struct {
	TeamCode            string   `json:"team_code"`
	DisplayName         string   `json:"display_name,omitempty"`
	Season              int      `json:"season"`
	PointsFor           float64  `json:"points_for"`
	PointsAgainst       float64  `json:"points_against"`
	GamesPlayed         int      `json:"games_played"`
	OffensiveEfficiency *float64 `json:"offensive_efficiency,omitempty"`
	DefensiveEfficiency *float64 `json:"defensive_efficiency,omitempty"`
}

// TeamStatsRecord is a finalized, derived view of one team's season.
// It is built once by NewTeamStatsRecord and never mutated afterwards.
type TeamStatsRecord struct {
	TeamCode              string          `json:"team_code"`
	DisplayName           string          `json:"display_name,omitempty"`
	Season                int             `json:"season"`
	PointsFor             float64         `json:"points_for"`
	PointsAgainst         float64         `json:"points_against"`
	GamesPlayed           int             `json:"games_played"`
	PointsPerGame         float64         `json:"points_per_game"`
	OpponentPointsPerGame float64         `json:"opponent_points_per_game"`
	OffensiveEfficiency   *float64        `json:"offensive_efficiency,omitempty"`
	DefensiveEfficiency   *float64        `json:"defensive_efficiency,omitempty"`
	NetRating             float64         `json:"net_rating"`
	NetRatingSource       NetRatingSource `json:"net_rating_source"`
}

// NewTeamStatsRecord validates raw totals and derives per-game and rating fields
func NewTeamStatsRecord(totals TeamSeasonTotals) (*TeamStatsRecord, error) {
	if totals.TeamCode == "" {
		return nil, NewMissingDataError("team_code", "team code is required")
	}
	if totals.GamesPlayed <= 0 {
		return nil, NewMissingDataError("games_played", "team %s has %d games played", totals.TeamCode, totals.GamesPlayed)
	}
	if totals.PointsFor < 0 || totals.PointsAgainst < 0 || !isFinite(totals.PointsFor) || !isFinite(totals.PointsAgainst) {
		return nil, NewMissingDataError("points", "team %s has invalid point totals %v/%v", totals.TeamCode, totals.PointsFor, totals.PointsAgainst)
	}

	games := float64(totals.GamesPlayed)
	record := &TeamStatsRecord{
		TeamCode:              totals.TeamCode,
		DisplayName:           totals.DisplayName,
		Season:                totals.Season,
		PointsFor:             totals.PointsFor,
		PointsAgainst:         totals.PointsAgainst,
		GamesPlayed:           totals.GamesPlayed,
		PointsPerGame:         totals.PointsFor / games,
		OpponentPointsPerGame: totals.PointsAgainst / games,
		OffensiveEfficiency:   copyFloat(totals.OffensiveEfficiency),
		DefensiveEfficiency:   copyFloat(totals.DefensiveEfficiency),
	}

	if record.OffensiveEfficiency != nil && record.DefensiveEfficiency != nil &&
		isFinite(*record.OffensiveEfficiency) && isFinite(*record.DefensiveEfficiency) {
		record.NetRating = *record.OffensiveEfficiency - *record.DefensiveEfficiency
		record.NetRatingSource = NetRatingFromEfficiency
	} else {
		record.NetRating = (totals.PointsFor - totals.PointsAgainst) / games / pointDifferentialScale
		record.NetRatingSource = NetRatingFromPointDifferential
	}

	return record, nil
}

// Label returns the "CODE - Name" form used for team pickers
func (r *TeamStatsRecord) Label() string {
	if r.DisplayName == "" {
		return r.TeamCode
	}
	return r.TeamCode + " - " + r.DisplayName
}

// Validate checks that a record was produced by NewTeamStatsRecord
func (r *TeamStatsRecord) Validate() error {
	if r == nil {
		return NewMissingDataError("team", "team record is nil")
	}
	if r.GamesPlayed <= 0 {
		return NewMissingDataError("games_played", "team %s has no games played", r.TeamCode)
	}
	if r.NetRatingSource == "" || !isFinite(r.NetRating) {
		return NewMissingDataError("net_rating", "team %s has no derived net rating", r.TeamCode)
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
