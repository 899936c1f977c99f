package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/config"
	"github.com/wegman-software/osmclean/internal/logger"
)

var (
	cfg             = config.DefaultConfig()
	verbose         bool
	logFile         string
	metricsInterval time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "osmclean",
	Short: "Audit, clean and reshape OpenStreetMap XML extracts",
	Long: `osmclean audits and cleans OSM extracts and reshapes them into nested documents.

Features:
  - Overpass download and k-th element sampling
  - Audit reports for street, city, state, county, postcode and other tag values
  - Lookup-table normalization with YAML overrides and optional Lua hooks
  - State, country and postcode inclusion filters
  - Document output as JSON lines or Parquet, or loaded into MongoDB or PostgreSQL`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg.Verbose = verbose
		cfg.LogFile = logFile
		cfg.MetricsInterval = metricsInterval

		logger.Init(logger.Options{Debug: verbose, File: logFile})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	// Logging and metrics flags
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file for persistent logging (JSON format)")
	rootCmd.PersistentFlags().DurationVar(&metricsInterval, "metrics-interval", 0, "Interval for resource usage logging, 0 to disable (e.g., 10s, 1m)")
	rootCmd.PersistentFlags().StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g., :9090)")
	rootCmd.PersistentFlags().DurationVar(&cfg.ProgressInterval, "progress-interval", cfg.ProgressInterval, "Interval for progress logging")
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Get().Info("Received signal, shutting down", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func exitWithError(msg string, err error) {
	log := logger.Get()
	if err != nil {
		log.Error(msg, zap.Error(err))
	} else {
		log.Error(msg)
	}
	logger.Sync()
	os.Exit(1)
}
