package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/spread-sim/internal/api"
	"github.com/yourusername/spread-sim/internal/health"
	"github.com/yourusername/spread-sim/internal/metrics"
	"github.com/yourusername/spread-sim/internal/scheduler"
	"github.com/yourusername/spread-sim/internal/simulation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with health checks, metrics and scheduled season refresh",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer app.Close()

	defaults, err := simulation.FromConfig(&cfg.Simulation)
	if err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}

	routerOpts := api.RouterOptions{
		AllowedOrigins:        cfg.Server.AllowedOrigins,
		RequestTimeoutSeconds: cfg.Server.RequestTimeoutSeconds,
		Logger:                appLogger,
	}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		routerOpts.MetricsPath = cfg.Metrics.Path
		routerOpts.MetricsHandler = metrics.Handler()
	}

	handler := api.NewHandler(app.seasons, simulation.NewSimulator(appLogger), api.HandlerConfig{
		Defaults:      defaults,
		DefaultSeason: cfg.App.DefaultSeason,
		MarginsShown:  cfg.Simulation.SampleMarginsShown,
	}, appLogger)

	healthServer := newHealthServer(app)
	if err := healthServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start health server: %w", err)
	}

	sched, err := startScheduler(app)
	if err != nil {
		return err
	}

	if _, err := app.seasons.Load(ctx, cfg.App.DefaultSeason); err != nil {
		appLogger.WithError(err).WithField("season", cfg.App.DefaultSeason).Warn("Default season not preloaded")
	}

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           api.NewRouter(handler, routerOpts),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.WithFields(logrus.Fields{
			"port":     cfg.Server.Port,
			"provider": app.provider.Name(),
			"cache":    app.seasonCache.Backend(),
		}).Info("API server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	healthServer.SetReady(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case sig := <-sigChan:
		appLogger.WithField("signal", sig).Info("Shutdown signal received")
	case runErr = <-serverErr:
		appLogger.WithError(runErr).Error("API server failed")
	case <-ctx.Done():
	}

	healthServer.SetReady(false)
	if sched != nil {
		if err := sched.Stop(); err != nil {
			appLogger.WithError(err).Error("Error stopping scheduler")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Error during API server shutdown")
	}
	cancel()

	appLogger.Info("spread-sim shut down")
	return runErr
}

func newHealthServer(app *application) *health.Server {
	s := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        strconv.Itoa(cfg.Server.HealthPort),
		Logger:      appLogger,
	})
	if app.db != nil {
		s.AddCheck("database", app.db.HealthCheck)
	}
	if app.sqlite != nil {
		s.AddCheck("sqlite", app.sqlite.PingContext)
	}
	if pinger, ok := app.seasonCache.(health.Pinger); ok {
		s.AddPinger("cache", pinger)
	}
	s.AddCheck("provider", func(ctx context.Context) error {
		if !app.provider.IsEnabled() {
			return fmt.Errorf("provider %s is disabled", app.provider.Name())
		}
		return nil
	})
	return s
}

func startScheduler(app *application) (*scheduler.Scheduler, error) {
	if !cfg.Schedule.Enabled {
		return nil, nil
	}
	seasons := cfg.Schedule.Seasons
	if len(seasons) == 0 {
		seasons = []int{cfg.App.DefaultSeason}
	}

	sched := scheduler.NewScheduler(app.seasons, appLogger)
	if err := sched.ScheduleSeasonRefresh(cfg.Schedule.RefreshCron, seasons); err != nil {
		return nil, fmt.Errorf("failed to schedule season refresh: %w", err)
	}
	if err := sched.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}
	appLogger.WithField("next_run", sched.GetNextRun()).Info("Season refresh scheduled")
	return sched, nil
}
