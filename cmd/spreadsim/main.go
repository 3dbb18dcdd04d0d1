package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/spread-sim/internal/config"
	"github.com/yourusername/spread-sim/internal/logger"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	statsFile  string
	logLevel   string
	appLogger  *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&statsFile, "stats-file", "", "Read season statistics from a JSON file instead of the configured provider")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override app.log_level")

	rootCmd.AddCommand(simulateCmd, teamsCmd, serveCmd)
}

var rootCmd = &cobra.Command{
	Use:     "spreadsim",
	Short:   "NFL point spread Monte Carlo simulator",
	Long:    `Builds a model spread from season statistics and simulates game margins to estimate cover probabilities.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfigWithSecrets(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLogger = logger.NewLoggerWithOutput(cfg.App.LogLevel, cfg.App.Environment, os.Stderr)
		return nil
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfigWithSecrets(ctx context.Context) error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, loaded, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if statsFile != "" {
		loaded.StatsProvider.Kind = config.ProviderStatic
		loaded.StatsProvider.StaticFile = statsFile
	}
	if logLevel != "" {
		loaded.App.LogLevel = logLevel
	}

	if err := config.Validate(loaded); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded
	return nil
}
