package datasource

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/spread-sim/internal/models"
)

// StatsProvider supplies raw per-team season aggregates
type StatsProvider interface {
	// FetchSeasonStats retrieves every team's totals for one season
	FetchSeasonStats(ctx context.Context, season int) ([]TeamSeasonData, error)

	// Name returns the name of the provider
	Name() string

	// IsEnabled returns whether this provider is currently enabled
	IsEnabled() bool
}

// SeasonStore is a persistent table of season aggregates
type SeasonStore interface {
	ListSeason(ctx context.Context, season int) ([]TeamSeasonData, error)
}

// TeamSeasonData is one team's season aggregates as delivered by a provider.
// Numbers stay in decimal form until they are converted into models.
type TeamSeasonData struct {
	TeamCode            string           `json:"team_code"`
	DisplayName         string           `json:"display_name,omitempty"`
	Season              int              `json:"season"`
	PointsFor           decimal.Decimal  `json:"points_for"`
	PointsAgainst       decimal.Decimal  `json:"points_against"`
	GamesPlayed         *int             `json:"games_played"`
	OffensiveEfficiency *decimal.Decimal `json:"offensive_efficiency,omitempty"`
	DefensiveEfficiency *decimal.Decimal `json:"defensive_efficiency,omitempty"`
	FetchedAt           time.Time        `json:"fetched_at"`
}

// ToTotals converts provider data into model totals
func (d TeamSeasonData) ToTotals() models.TeamSeasonTotals {
	totals := models.TeamSeasonTotals{
		TeamCode:      d.TeamCode,
		DisplayName:   d.DisplayName,
		Season:        d.Season,
		PointsFor:     d.PointsFor.InexactFloat64(),
		PointsAgainst: d.PointsAgainst.InexactFloat64(),
	}
	if d.GamesPlayed != nil {
		totals.GamesPlayed = *d.GamesPlayed
	}
	if d.OffensiveEfficiency != nil {
		v := d.OffensiveEfficiency.InexactFloat64()
		totals.OffensiveEfficiency = &v
	}
	if d.DefensiveEfficiency != nil {
		v := d.DefensiveEfficiency.InexactFloat64()
		totals.DefensiveEfficiency = &v
	}
	return totals
}

// ValidateSeasonData rejects rows a season cannot be built from
func ValidateSeasonData(source string, season int, rows []TeamSeasonData) error {
	if len(rows) == 0 {
		return NewDataSourceError(source, ErrCodeNotFound, fmt.Sprintf("no teams for season %d", season), nil)
	}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		// codes are matched case-insensitively downstream
		code := strings.ToUpper(strings.TrimSpace(row.TeamCode))
		if code == "" {
			return NewDataSourceError(source, ErrCodeInvalidData, "row without team code", nil)
		}
		if _, dup := seen[code]; dup {
			return NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("duplicate team %s in season %d", code, season), nil)
		}
		seen[code] = struct{}{}
		if row.GamesPlayed == nil {
			return NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("team %s is missing games_played", row.TeamCode), nil)
		}
		if row.Season != season {
			return NewDataSourceError(source, ErrCodeInvalidData, fmt.Sprintf("team %s belongs to season %d, want %d", row.TeamCode, row.Season, season), nil)
		}
	}
	return nil
}

// DataSourceError represents errors from provider operations
type DataSourceError struct {
	Source  string // Provider name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string
	Err     error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeDisabled             = "disabled"
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsDataSourceError reports whether err carries a DataSourceError
func AsDataSourceError(err error) (DataSourceError, bool) {
	var dsErr DataSourceError
	ok := errors.As(err, &dsErr)
	return dsErr, ok
}
