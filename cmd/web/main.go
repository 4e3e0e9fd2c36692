package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unsovich/BBDashboard/pkg/metrics"
	"github.com/unsovich/BBDashboard/pkg/server"
	"github.com/unsovich/BBDashboard/pkg/services/config"
	"github.com/unsovich/BBDashboard/pkg/services/dashboard"
	"github.com/unsovich/BBDashboard/pkg/services/retention"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the KPI dashboard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the settings file (optional)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	m := metrics.New()
	session, err := dashboard.Open(ctx, settings, m)
	if err != nil {
		return err
	}
	defer session.Close()

	if settings.Storage.DBPath != "" {
		logger.Info().Msgf("Snapshots are stored in `%s`.", settings.Storage.DBPath)
	}

	retentionCtx, stopRetention := context.WithCancel(ctx)
	defer stopRetention()
	session.StartRetention(retentionCtx, retention.RunnerConfig{
		Keep:     settings.Storage.KeepSnapshots,
		Interval: settings.Storage.PruneInterval,
	})

	addr := net.JoinHostPort(settings.Server.Host, settings.Server.Port)
	api := server.NewWebAPI(server.Config{
		Addr: addr,
		Dependencies: server.Dependencies{
			Dashboard: session,
			Metrics:   m,
			Logger:    logger,
		},
	})

	return api.Start()
}
