package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/osmfile"
	"github.com/wegman-software/osmclean/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input> <output.osm>",
	Short: "Normalize and filter tags, writing cleaned OSM XML",
	Long: `Normalize tag values with the lookup tables, drop elements outside the
configured states, countries and postal codes, and write the remaining
elements as OSM XML. Elements that could not be reshaped are skipped
with a warning, or abort the run with --strict.

Example:
  osmclean clean richmond.osm richmond-clean.osm
  osmclean clean --rules rules.yaml --script hooks.lua richmond.osm.gz out.osm.gz`,
	Args: cobra.ExactArgs(2),
	Run:  runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	addTransformFlags(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	log := logger.Get()
	cfg.InputFile = args[0]
	cfg.OutputFile = args[1]
	applyTransformFlags()

	if err := cfg.Validate(); err != nil {
		exitWithError("Invalid configuration", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	t, err := buildTransformer(ctx, "xml")
	if err != nil {
		exitWithError("Failed to build pipeline", err)
	}
	defer t.Close()

	src, err := osmfile.Open(ctx, cfg.InputFile)
	if err != nil {
		exitWithError("Failed to open input", err)
	}
	defer src.Close()

	w, err := osmfile.Create(cfg.OutputFile)
	if err != nil {
		exitWithError("Failed to create output", err)
	}

	log.Info("Starting clean",
		zap.String("input", cfg.InputFile),
		zap.String("output", cfg.OutputFile),
		zap.Bool("normalize", cfg.Normalize),
		zap.Bool("filter", cfg.Filter),
	)

	var stats *pipeline.Stats
	err = runWithMetrics(ctx, func(ctx context.Context) error {
		var err error
		stats, err = t.pipeline.Clean(ctx, src, w)
		return err
	})
	if err != nil {
		w.Close()
		exitWithError("Clean failed", err)
	}
	if err := w.Close(); err != nil {
		exitWithError("Failed to finish output", err)
	}

	logStats("Clean complete", stats)
}
