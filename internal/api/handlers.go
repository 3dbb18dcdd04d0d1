// Package api exposes the season tables and the simulator over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/spread-sim/internal/datasource"
	"github.com/yourusername/spread-sim/internal/models"
	"github.com/yourusername/spread-sim/internal/report"
	"github.com/yourusername/spread-sim/internal/simulation"
)

const maxRequestBytes = 1 << 16

// SeasonSource resolves season tables and matchups
type SeasonSource interface {
	Opponents(ctx context.Context, season int, exclude string) ([]*models.TeamStatsRecord, error)
	Matchup(ctx context.Context, season int, homeCode, awayCode string) (*models.TeamStatsRecord, *models.TeamStatsRecord, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	seasons       SeasonSource
	simulator     *simulation.Simulator
	defaults      simulation.Defaults
	defaultSeason int
	marginsShown  int
	logger        *logrus.Entry
}

// HandlerConfig carries the request defaults
type HandlerConfig struct {
	Defaults      simulation.Defaults
	DefaultSeason int
	MarginsShown  int
}

// NewHandler creates a new handler with dependencies
func NewHandler(seasons SeasonSource, simulator *simulation.Simulator, cfg HandlerConfig, log *logrus.Logger) *Handler {
	shown := cfg.MarginsShown
	if shown <= 0 {
		shown = 50
	}
	return &Handler{
		seasons:       seasons,
		simulator:     simulator,
		defaults:      cfg.Defaults,
		defaultSeason: cfg.DefaultSeason,
		marginsShown:  shown,
		logger:        log.WithField("component", "api"),
	}
}

// TeamView is one row of a season table
type TeamView struct {
	Code                  string   `json:"code"`
	Label                 string   `json:"label"`
	GamesPlayed           int      `json:"games_played"`
	PointsPerGame         float64  `json:"points_per_game"`
	OpponentPointsPerGame float64  `json:"opponent_points_per_game"`
	NetRating             float64  `json:"net_rating"`
	NetRatingSource       string   `json:"net_rating_source"`
	OffensiveEfficiency   *float64 `json:"offensive_efficiency,omitempty"`
	DefensiveEfficiency   *float64 `json:"defensive_efficiency,omitempty"`
}

// TeamsResponse lists a season's teams
type TeamsResponse struct {
	Season int        `json:"season"`
	Count  int        `json:"count"`
	Teams  []TeamView `json:"teams"`
}

// SimulationRequest is the body of POST /api/v1/simulations.
// Omitted numeric fields take the configured defaults.
type SimulationRequest struct {
	Season             int      `json:"season"`
	Home               string   `json:"home"`
	Away               string   `json:"away"`
	SampleCount        *int     `json:"sample_count,omitempty"`
	HomeFieldAdvantage *float64 `json:"home_field_advantage,omitempty"`
	HomeSD             *float64 `json:"home_sd,omitempty"`
	AwaySD             *float64 `json:"away_sd,omitempty"`
	MarketLine         string   `json:"market_line,omitempty"`
	Seed               int64    `json:"seed,omitempty"`
	IncludeMargins     bool     `json:"include_margins,omitempty"`
	HistogramBins      int      `json:"histogram_bins,omitempty"`
}

// SimulationResponse is a result without the full margin sequence
type SimulationResponse struct {
	models.SimulationResult
	Season        int                   `json:"season"`
	Histogram     []models.HistogramBin `json:"histogram"`
	SampleMargins []float64             `json:"sample_margins,omitempty"`
	EdgeMessage   string                `json:"edge_message,omitempty"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// GetSeasonTeams lists the teams of a season.
// Query params: exclude (team code to leave out, as when picking an opponent)
func (h *Handler) GetSeasonTeams(w http.ResponseWriter, r *http.Request) {
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "season must be a number", nil)
		return
	}

	records, err := h.seasons.Opponents(r.Context(), season, r.URL.Query().Get("exclude"))
	if err != nil {
		h.respondDomainError(w, "failed to load season", err)
		return
	}

	teams := make([]TeamView, 0, len(records))
	for _, rec := range records {
		teams = append(teams, TeamView{
			Code:                  rec.TeamCode,
			Label:                 rec.Label(),
			GamesPlayed:           rec.GamesPlayed,
			PointsPerGame:         rec.PointsPerGame,
			OpponentPointsPerGame: rec.OpponentPointsPerGame,
			NetRating:             rec.NetRating,
			NetRatingSource:       string(rec.NetRatingSource),
			OffensiveEfficiency:   rec.OffensiveEfficiency,
			DefensiveEfficiency:   rec.DefensiveEfficiency,
		})
	}

	respondJSON(w, http.StatusOK, TeamsResponse{Season: season, Count: len(teams), Teams: teams})
}

// CreateSimulation runs one matchup simulation
func (h *Handler) CreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req SimulationRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), nil)
		return
	}
	if req.Season == 0 {
		req.Season = h.defaultSeason
	}
	if err := simulation.ValidateHistogramBins(req.HistogramBins); err != nil {
		h.respondDomainError(w, "invalid simulation parameters", err)
		return
	}

	cfg, err := h.defaults.Resolve(simulation.Overrides{
		SampleCount:        req.SampleCount,
		HomeFieldAdvantage: req.HomeFieldAdvantage,
		HomeScoreStdDev:    req.HomeSD,
		AwayScoreStdDev:    req.AwaySD,
		MarketLine:         req.MarketLine,
		Seed:               req.Seed,
	})
	if err != nil {
		h.respondDomainError(w, "invalid simulation parameters", err)
		return
	}

	home, away, err := h.seasons.Matchup(r.Context(), req.Season, req.Home, req.Away)
	if err != nil {
		h.respondDomainError(w, "failed to resolve matchup", err)
		return
	}

	result, err := h.simulator.Run(r.Context(), home, away, cfg)
	if err != nil {
		h.respondDomainError(w, "simulation failed", err)
		return
	}

	bins := req.HistogramBins
	if bins == 0 {
		bins = h.defaults.HistogramBins
	}
	resp := SimulationResponse{
		SimulationResult: *result,
		Season:           req.Season,
		Histogram:        simulation.Histogram(result.Margins, bins),
	}
	resp.Margins = nil
	if req.IncludeMargins {
		resp.SampleMargins = result.SampleMargins(h.marginsShown)
	}
	if result.Market != nil {
		resp.EdgeMessage = report.EdgeMessage(result.Market)
	}

	respondJSON(w, http.StatusCreated, resp)
}

// respondDomainError maps core and provider errors onto status codes
func (h *Handler) respondDomainError(w http.ResponseWriter, message string, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).Error(message)
	}
	respondError(w, status, message, err)
}

func statusForError(err error) int {
	if dsErr, ok := datasource.AsDataSourceError(err); ok {
		if dsErr.Code == datasource.ErrCodeNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	}
	switch {
	case models.IsConfigurationError(err), models.IsInvalidInputError(err):
		return http.StatusBadRequest
	case models.IsMissingDataError(err):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func requestTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
