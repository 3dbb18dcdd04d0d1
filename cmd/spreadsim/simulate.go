package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/spread-sim/internal/report"
	"github.com/yourusername/spread-sim/internal/simulation"
)

var simulateOpts struct {
	home        string
	away        string
	season      int
	samples     int
	hfa         float64
	homeSD      float64
	awaySD      float64
	marketLine  string
	seed        int64
	workers     int
	bins        int
	showMargins bool
	csvPath     string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one matchup and print the model report",
	Example: `  spreadsim simulate --home KC --away BUF --season 2024 --market-line -2.5
  spreadsim simulate --home DEN --away LV --samples 50000 --seed 42 --show-margins`,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateOpts.home, "home", "", "Home team code")
	f.StringVar(&simulateOpts.away, "away", "", "Away team code")
	f.IntVar(&simulateOpts.season, "season", 0, "Season (defaults to app.default_season)")
	f.IntVar(&simulateOpts.samples, "samples", 0, "Number of simulated games (capped at simulation.max_samples)")
	f.Float64Var(&simulateOpts.hfa, "hfa", 0, "Home field advantage in points")
	f.Float64Var(&simulateOpts.homeSD, "home-sd", 0, "Home score standard deviation")
	f.Float64Var(&simulateOpts.awaySD, "away-sd", 0, "Away score standard deviation")
	f.StringVar(&simulateOpts.marketLine, "market-line", "", "Sportsbook line, positive when home is favored")
	f.Int64Var(&simulateOpts.seed, "seed", 0, "Random seed (0 for fresh randomness)")
	f.IntVar(&simulateOpts.workers, "workers", 0, "Parallel sampling workers (overrides simulation.workers)")
	f.IntVar(&simulateOpts.bins, "bins", 0, "Histogram bins, at most 500 (defaults to simulation.histogram_bins)")
	f.BoolVar(&simulateOpts.showMargins, "show-margins", false, "Print the first simulated margins")
	f.StringVar(&simulateOpts.csvPath, "csv", "", "Also write the headline numbers to this CSV file")
	_ = simulateCmd.MarkFlagRequired("home")
	_ = simulateCmd.MarkFlagRequired("away")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	defaults, err := simulation.FromConfig(&cfg.Simulation)
	if err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	if cmd.Flags().Changed("workers") {
		defaults.Workers = simulateOpts.workers
	}

	overrides := simulation.Overrides{
		MarketLine: simulateOpts.marketLine,
		Seed:       simulateOpts.seed,
	}
	if cmd.Flags().Changed("samples") {
		overrides.SampleCount = &simulateOpts.samples
	}
	if cmd.Flags().Changed("hfa") {
		overrides.HomeFieldAdvantage = &simulateOpts.hfa
	}
	if cmd.Flags().Changed("home-sd") {
		overrides.HomeScoreStdDev = &simulateOpts.homeSD
	}
	if cmd.Flags().Changed("away-sd") {
		overrides.AwayScoreStdDev = &simulateOpts.awaySD
	}
	simCfg, err := defaults.Resolve(overrides)
	if err != nil {
		return err
	}
	if err := simulation.ValidateHistogramBins(simulateOpts.bins); err != nil {
		return err
	}

	season := simulateOpts.season
	if season == 0 {
		season = cfg.App.DefaultSeason
	}

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	home, away, err := app.seasons.Matchup(ctx, season, simulateOpts.home, simulateOpts.away)
	if err != nil {
		return err
	}

	result, err := simulation.NewSimulator(appLogger).Run(ctx, home, away, simCfg)
	if err != nil {
		return err
	}

	bins := simulateOpts.bins
	if bins == 0 {
		bins = defaults.HistogramBins
	}
	fmt.Fprint(cmd.OutOrStdout(), report.GenerateConsoleReport(result, report.Options{
		ShowMargins:   simulateOpts.showMargins,
		MarginsShown:  cfg.Simulation.SampleMarginsShown,
		HistogramBins: bins,
	}))

	if simulateOpts.csvPath != "" {
		if err := report.GenerateCSVExport(result, simulateOpts.csvPath); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		appLogger.WithField("path", simulateOpts.csvPath).Info("CSV export written")
	}
	return nil
}
