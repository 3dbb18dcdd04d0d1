package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const statsAPISourceName = "stats_api"

// StatsAPIClient implements StatsProvider against a JSON season statistics API
type StatsAPIClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logrus.Entry
}

type statsAPIResponse struct {
	Season int            `json:"season"`
	Teams  []statsAPITeam `json:"teams"`
}

type statsAPITeam struct {
	Team                string           `json:"team"`
	Name                string           `json:"name"`
	PointsFor           decimal.Decimal  `json:"points_for"`
	PointsAgainst       decimal.Decimal  `json:"points_against"`
	GamesPlayed         *int             `json:"games_played"`
	OffensiveEfficiency *decimal.Decimal `json:"offensive_efficiency"`
	DefensiveEfficiency *decimal.Decimal `json:"defensive_efficiency"`
}

// NewStatsAPIClient creates a new statistics API client
func NewStatsAPIClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, log *logrus.Logger) *StatsAPIClient {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &StatsAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     log.WithField("component", statsAPISourceName),
	}
}

// FetchSeasonStats retrieves every team's totals for one season
func (c *StatsAPIClient) FetchSeasonStats(ctx context.Context, season int) ([]TeamSeasonData, error) {
	if !c.enabled {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeDisabled, "data source is disabled", nil)
	}

	url := fmt.Sprintf("%s/seasons/%d/teams", c.baseURL, season)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeNetworkError, "failed to create request", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeNetworkError, "failed to fetch season stats", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeAuthenticationFailed, "invalid API key", nil)
	case http.StatusNotFound:
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeNotFound, fmt.Sprintf("season %d not found", season), nil)
	case http.StatusTooManyRequests:
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var payload statsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, NewDataSourceError(statsAPISourceName, ErrCodeInvalidData, "failed to parse response", err)
	}

	fetchedAt := time.Now().UTC()
	rows := make([]TeamSeasonData, 0, len(payload.Teams))
	for _, team := range payload.Teams {
		rows = append(rows, TeamSeasonData{
			TeamCode:            strings.ToUpper(strings.TrimSpace(team.Team)),
			DisplayName:         team.Name,
			Season:              season,
			PointsFor:           team.PointsFor,
			PointsAgainst:       team.PointsAgainst,
			GamesPlayed:         team.GamesPlayed,
			OffensiveEfficiency: team.OffensiveEfficiency,
			DefensiveEfficiency: team.DefensiveEfficiency,
			FetchedAt:           fetchedAt,
		})
	}

	if err := ValidateSeasonData(statsAPISourceName, season, rows); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"season": season,
		"teams":  len(rows),
	}).Debug("Fetched season stats")
	return rows, nil
}

// Name returns the data source name
func (c *StatsAPIClient) Name() string {
	return statsAPISourceName
}

// IsEnabled returns whether this data source is enabled
func (c *StatsAPIClient) IsEnabled() bool {
	return c.enabled
}
