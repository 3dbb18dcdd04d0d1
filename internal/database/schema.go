package database

// TeamSeasonStatsTable holds one row per team and season
const TeamSeasonStatsTable = "team_season_stats"

const postgresSchema = `
CREATE TABLE IF NOT EXISTS team_season_stats (
	season               INTEGER     NOT NULL,
	team_code            TEXT        NOT NULL,
	display_name         TEXT        NOT NULL DEFAULT '',
	points_for           NUMERIC     NOT NULL,
	points_against       NUMERIC     NOT NULL,
	games_played         INTEGER,
	offensive_efficiency NUMERIC,
	defensive_efficiency NUMERIC,
	updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (season, team_code)
)`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS team_season_stats (
	season               INTEGER NOT NULL,
	team_code            TEXT    NOT NULL,
	display_name         TEXT    NOT NULL DEFAULT '',
	points_for           TEXT    NOT NULL,
	points_against       TEXT    NOT NULL,
	games_played         INTEGER,
	offensive_efficiency TEXT,
	defensive_efficiency TEXT,
	updated_at           TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (season, team_code)
)`
