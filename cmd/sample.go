package cmd

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/osmfile"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <input> <output.osm>",
	Short: "Write every k-th top-level element to a smaller OSM XML file",
	Long: `Write the 1st, (k+1)th, (2k+1)th, ... top-level element of the input to a new
OSM XML file. Elements are copied unchanged.

Example:
  osmclean sample richmond.osm sample.osm
  osmclean sample -k 100 richmond.osm.gz sample.osm`,
	Args: cobra.ExactArgs(2),
	Run:  runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)

	sampleCmd.Flags().IntVarP(&cfg.SampleEvery, "every", "k", cfg.SampleEvery, "Keep one element out of every k")
}

func runSample(cmd *cobra.Command, args []string) {
	log := logger.Get()
	cfg.InputFile = args[0]
	cfg.OutputFile = args[1]

	ctx, cancel := signalContext()
	defer cancel()

	src, err := osmfile.Open(ctx, cfg.InputFile)
	if err != nil {
		exitWithError("Failed to open input", err)
	}
	defer src.Close()

	w, err := osmfile.Create(cfg.OutputFile)
	if err != nil {
		exitWithError("Failed to create output", err)
	}

	log.Info("Sampling",
		zap.String("input", cfg.InputFile),
		zap.String("output", cfg.OutputFile),
		zap.Int("every", cfg.SampleEvery),
	)

	read, err := osmfile.Sample(ctx, src, w, cfg.SampleEvery)
	if err != nil {
		w.Close()
		exitWithError("Sampling failed", err)
	}
	if err := w.Close(); err != nil {
		exitWithError("Failed to finish output", err)
	}

	log.Info("Sample complete",
		zap.Int64("read", read),
		zap.Int64("written", w.Count()),
	)
}
