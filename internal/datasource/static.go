package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

const staticSourceName = "static"

// StaticProvider serves season data held in memory
type StaticProvider struct {
	seasons map[int][]TeamSeasonData
}

// NewStaticProvider groups rows by season
func NewStaticProvider(rows []TeamSeasonData) *StaticProvider {
	seasons := make(map[int][]TeamSeasonData)
	for _, row := range rows {
		seasons[row.Season] = append(seasons[row.Season], row)
	}
	return &StaticProvider{seasons: seasons}
}

// LoadStaticFile reads a JSON array of TeamSeasonData rows
func LoadStaticFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats file: %w", err)
	}

	var rows []TeamSeasonData
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, NewDataSourceError(staticSourceName, ErrCodeInvalidData, "failed to parse stats file "+path, err)
	}
	return NewStaticProvider(rows), nil
}

// FetchSeasonStats returns a copy of the stored rows for season
func (p *StaticProvider) FetchSeasonStats(ctx context.Context, season int) ([]TeamSeasonData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := slices.Clone(p.seasons[season])
	if err := ValidateSeasonData(staticSourceName, season, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Seasons lists the seasons held by the provider in ascending order
func (p *StaticProvider) Seasons() []int {
	seasons := make([]int, 0, len(p.seasons))
	for season := range p.seasons {
		seasons = append(seasons, season)
	}
	slices.Sort(seasons)
	return seasons
}

// Name returns the data source name
func (p *StaticProvider) Name() string {
	return staticSourceName
}

// IsEnabled always reports true
func (p *StaticProvider) IsEnabled() bool {
	return true
}

// StoreProvider adapts a SeasonStore to StatsProvider
type StoreProvider struct {
	name  string
	store SeasonStore
}

// NewStoreProvider wraps store under the given provider name
func NewStoreProvider(name string, store SeasonStore) *StoreProvider {
	return &StoreProvider{name: name, store: store}
}

// FetchSeasonStats reads season rows from the store
func (p *StoreProvider) FetchSeasonStats(ctx context.Context, season int) ([]TeamSeasonData, error) {
	rows, err := p.store.ListSeason(ctx, season)
	if err != nil {
		return nil, NewDataSourceError(p.name, ErrCodeServerError, fmt.Sprintf("failed to read season %d", season), err)
	}
	if err := ValidateSeasonData(p.name, season, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Name returns the data source name
func (p *StoreProvider) Name() string {
	return p.name
}

// IsEnabled returns whether a store is attached
func (p *StoreProvider) IsEnabled() bool {
	return p.store != nil
}
