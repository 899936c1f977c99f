package cmd

import (
	"time"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/config"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/overpass"
	"github.com/wegman-software/osmclean/internal/pipeline"
)

var (
	downloadBBox    string
	downloadRetries int
	downloadRate    float64
)

var downloadCmd = &cobra.Command{
	Use:   "download <output.osm>",
	Short: "Download OSM XML for a bounding box from the Overpass API",
	Long: `Download all nodes inside a bounding box, with metadata, from an Overpass API
endpoint and save them as OSM XML. The file is written to a temporary name and
renamed into place once complete.

Example:
  osmclean download richmond.osm
  osmclean download --bbox "-77.5,37.5,-77.4,37.6" small.osm`,
	Args: cobra.ExactArgs(1),
	Run:  runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&downloadBBox, "bbox", config.RichmondBBox.String(), "Bounding box: minlon,minlat,maxlon,maxlat")
	downloadCmd.Flags().StringVar(&cfg.Endpoint, "endpoint", cfg.Endpoint, "Overpass API interpreter URL")
	downloadCmd.Flags().IntVar(&downloadRetries, "retries", 3, "Retries on server or transport errors")
	downloadCmd.Flags().Float64Var(&downloadRate, "rate", 1, "Maximum requests per second")
}

func runDownload(cmd *cobra.Command, args []string) {
	log := logger.Get()
	cfg.OutputFile = args[0]

	bbox, err := config.ParseBBox(downloadBBox)
	if err != nil {
		exitWithError("Invalid bounding box", err)
	}
	cfg.BBox = bbox

	ctx, cancel := signalContext()
	defer cancel()

	client := overpass.NewClient(
		overpass.WithEndpoint(cfg.Endpoint),
		overpass.WithRateLimit(downloadRate, 1),
		overpass.WithRetries(downloadRetries, 2*time.Second),
	)

	log.Info("Starting download",
		zap.String("bbox", cfg.BBox.String()),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("output", cfg.OutputFile),
	)

	start := time.Now()
	n, err := client.Download(ctx, cfg.BBox.Bound(), cfg.OutputFile)
	if err != nil {
		exitWithError("Download failed", err)
	}

	log.Info("Download complete",
		zap.String("size", pipeline.FormatBytes(n)),
		zap.Duration("duration", time.Since(start)),
	)
}
