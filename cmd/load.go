package cmd

import (
	"context"

	"go.uber.org/zap"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/osmfile"
	"github.com/wegman-software/osmclean/internal/pipeline"
	"github.com/wegman-software/osmclean/internal/sink"
)

var loadCmd = &cobra.Command{
	Use:   "load <input>",
	Short: "Reshape elements and load the documents into MongoDB or PostgreSQL",
	Long: `Normalize, filter and reshape elements, then insert the documents into a
database in batches:
  - mongo: InsertMany into a collection (default mapdb.map_docs)
  - postgres: COPY into a table with an element_type, id and jsonb doc column

Example:
  osmclean load richmond.osm
  osmclean load --target postgres -d osm -U postgres --db-table map_docs --drop richmond.osm`,
	Args: cobra.ExactArgs(1),
	Run:  runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
	addTransformFlags(loadCmd)

	loadCmd.Flags().StringVar(&cfg.Target, "target", cfg.Target, "Database target: mongo or postgres")
	loadCmd.Flags().BoolVar(&cfg.DropExisting, "drop", false, "Drop the existing collection or table before loading")
	loadCmd.Flags().IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Documents per insert batch")

	// MongoDB flags
	loadCmd.Flags().StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection URI")
	loadCmd.Flags().StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database")
	loadCmd.Flags().StringVar(&cfg.MongoCollection, "mongo-collection", cfg.MongoCollection, "MongoDB collection")

	// PostgreSQL flags
	loadCmd.Flags().StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "PostgreSQL host")
	loadCmd.Flags().IntVar(&cfg.DBPort, "db-port", cfg.DBPort, "PostgreSQL port")
	loadCmd.Flags().StringVarP(&cfg.DBName, "db-name", "d", cfg.DBName, "PostgreSQL database name")
	loadCmd.Flags().StringVarP(&cfg.DBUser, "db-user", "U", cfg.DBUser, "PostgreSQL user")
	loadCmd.Flags().StringVarP(&cfg.DBPassword, "db-password", "W", "", "PostgreSQL password")
	loadCmd.Flags().StringVar(&cfg.DBSchema, "db-schema", cfg.DBSchema, "PostgreSQL schema")
	loadCmd.Flags().StringVar(&cfg.DBTable, "db-table", cfg.DBTable, "PostgreSQL table")
}

func openDatabaseSink(ctx context.Context) (sink.Sink, error) {
	if cfg.Target == "postgres" {
		return sink.OpenPostgres(ctx, sink.PostgresConfig{
			ConnString: cfg.ConnectionString(),
			Schema:     cfg.DBSchema,
			Table:      cfg.DBTable,
			BatchSize:  cfg.BatchSize,
			Drop:       cfg.DropExisting,
		})
	}
	return sink.OpenMongo(ctx, sink.MongoConfig{
		URI:        cfg.MongoURI,
		Database:   cfg.MongoDatabase,
		Collection: cfg.MongoCollection,
		BatchSize:  cfg.BatchSize,
		Drop:       cfg.DropExisting,
	})
}

func runLoad(cmd *cobra.Command, args []string) {
	log := logger.Get()
	cfg.InputFile = args[0]
	applyTransformFlags()

	if err := cfg.ValidateTarget(); err != nil {
		exitWithError("Invalid configuration", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	t, err := buildTransformer(ctx, cfg.Target)
	if err != nil {
		exitWithError("Failed to build pipeline", err)
	}
	defer t.Close()

	src, err := osmfile.Open(ctx, cfg.InputFile)
	if err != nil {
		exitWithError("Failed to open input", err)
	}
	defer src.Close()

	log.Info("Connecting", zap.String("target", cfg.Target))
	out, err := openDatabaseSink(ctx)
	if err != nil {
		exitWithError("Failed to connect to database", err)
	}

	log.Info("Starting load",
		zap.String("input", cfg.InputFile),
		zap.String("target", cfg.Target),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Bool("drop", cfg.DropExisting),
	)

	var stats *pipeline.Stats
	err = runWithMetrics(ctx, func(ctx context.Context) error {
		var err error
		stats, err = t.pipeline.Build(ctx, src, out)
		return err
	})
	if err != nil {
		out.Close()
		exitWithError("Load failed", err)
	}
	if err := out.Close(); err != nil {
		exitWithError("Failed to close database connection", err)
	}

	logStats("Load complete", stats)
}
