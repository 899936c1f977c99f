package cmd

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/osmfile"
	"github.com/wegman-software/osmclean/internal/pipeline"
	"github.com/wegman-software/osmclean/internal/sink"
)

var shapeCmd = &cobra.Command{
	Use:   "shape <input> <output>",
	Short: "Reshape elements into nested documents written as JSON lines or Parquet",
	Long: `Normalize and filter elements, then reshape each one into a nested document:
colon-separated tag keys become nested objects, address tags move under
"addr", and node coordinates become a [lat, lon] pair.

The output format follows the file extension (.parquet or anything else
for JSON lines) unless --format is given.

Example:
  osmclean shape richmond.osm docs.jsonl
  osmclean shape --format parquet --batch-size 5000 richmond.osm docs.parquet`,
	Args: cobra.ExactArgs(2),
	Run:  runShape,
}

func init() {
	rootCmd.AddCommand(shapeCmd)
	addTransformFlags(shapeCmd)

	shapeCmd.Flags().StringVar(&cfg.Format, "format", "", "Output format: jsonl or parquet (default from extension)")
	shapeCmd.Flags().BoolVar(&cfg.Pretty, "pretty", false, "Indent JSON documents (one document per block instead of per line)")
	shapeCmd.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Documents per Parquet row group")
}

// outputFormat picks the document format from the flag or the file extension
func outputFormat(format, path string) string {
	if format != "" {
		return format
	}
	if strings.HasSuffix(strings.ToLower(path), ".parquet") {
		return "parquet"
	}
	return "jsonl"
}

func openDocumentSink(format, path string) (sink.Sink, error) {
	if format == "parquet" {
		return sink.CreateParquet(path, cfg.BatchSize)
	}
	return sink.CreateJSONL(path, cfg.Pretty)
}

func runShape(cmd *cobra.Command, args []string) {
	log := logger.Get()
	cfg.InputFile = args[0]
	cfg.OutputFile = args[1]
	cfg.Format = outputFormat(cfg.Format, cfg.OutputFile)
	applyTransformFlags()

	if err := cfg.ValidateOutput(); err != nil {
		exitWithError("Invalid configuration", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	t, err := buildTransformer(ctx, cfg.Format)
	if err != nil {
		exitWithError("Failed to build pipeline", err)
	}
	defer t.Close()

	src, err := osmfile.Open(ctx, cfg.InputFile)
	if err != nil {
		exitWithError("Failed to open input", err)
	}
	defer src.Close()

	out, err := openDocumentSink(cfg.Format, cfg.OutputFile)
	if err != nil {
		exitWithError("Failed to create output", err)
	}

	log.Info("Starting shape",
		zap.String("input", cfg.InputFile),
		zap.String("output", cfg.OutputFile),
		zap.String("format", cfg.Format),
		zap.String("collision", cfg.Collision),
	)

	var stats *pipeline.Stats
	err = runWithMetrics(ctx, func(ctx context.Context) error {
		var err error
		stats, err = t.pipeline.Build(ctx, src, out)
		return err
	})
	if err != nil {
		out.Close()
		exitWithError("Shape failed", err)
	}
	if err := out.Close(); err != nil {
		exitWithError("Failed to finish output", err)
	}

	logStats("Shape complete", stats)
}
