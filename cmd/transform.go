package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spf13/cobra"
	"github.com/wegman-software/osmclean/internal/config"
	"github.com/wegman-software/osmclean/internal/filter"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/metrics"
	"github.com/wegman-software/osmclean/internal/normalize"
	"github.com/wegman-software/osmclean/internal/pipeline"
	"github.com/wegman-software/osmclean/internal/reshape"
	"github.com/wegman-software/osmclean/internal/script"
)

var (
	noNormalize  bool
	noFilter     bool
	noCountyTags bool
)

// addTransformFlags registers the flags shared by clean, shape and load
func addTransformFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.RulesFile, "rules", "", "YAML file or URL overriding lookup tables and filter settings")
	cmd.Flags().StringVar(&cfg.ScriptFile, "script", "", "Lua file or URL defining rewrite(key, value) and/or include(tags)")
	cmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "Skip tag value normalization")
	cmd.Flags().BoolVar(&noFilter, "no-filter", false, "Keep every element regardless of state, country and postcode")
	cmd.Flags().BoolVar(&noCountyTags, "no-county-tags", false, "Do not derive GNIS county name/number tags")
	cmd.Flags().StringVar(&cfg.Collision, "collision", cfg.Collision, "Handling of a nested tag landing on a list: accumulate or strict")
	cmd.Flags().BoolVar(&cfg.Strict, "strict", false, "Abort on the first invalid element instead of skipping it")
}

func applyTransformFlags() {
	cfg.Normalize = !noNormalize
	cfg.Filter = !noFilter
	cfg.CountyTags = !noCountyTags
}

// transformer holds the stages built from the configuration
type transformer struct {
	pipeline *pipeline.Pipeline
	script   *script.Runtime
}

func (t *transformer) Close() {
	if t.script != nil {
		t.script.Close()
	}
}

// buildTransformer loads rules and script and assembles the pipeline stages
func buildTransformer(ctx context.Context, output string) (*transformer, error) {
	log := logger.Get()

	rules, err := config.LoadRules(ctx, cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.CollisionPolicy()
	if err != nil {
		return nil, err
	}

	t := &transformer{}
	if cfg.ScriptFile != "" {
		code, err := config.Fetch(ctx, cfg.ScriptFile)
		if err != nil {
			return nil, err
		}
		t.script = script.NewRuntime()
		if err := t.script.LoadString(string(code)); err != nil {
			t.Close()
			return nil, err
		}
		log.Info("Loaded script",
			zap.String("script", cfg.ScriptFile),
			zap.Bool("rewrite", t.script.HasRewrite()),
			zap.Bool("include", t.script.HasInclude()))
	}

	opts := pipeline.Options{
		Reshaper:         reshape.New(policy),
		Strict:           cfg.Strict,
		ProgressInterval: cfg.ProgressInterval,
		Output:           output,
		Logger:           log,
	}

	if cfg.Normalize {
		nopts := []normalize.Option{normalize.WithObserver(metrics.ObserveRewrite)}
		if !cfg.CountyTags {
			nopts = append(nopts, normalize.WithoutCountyTags())
		}
		if t.script != nil && t.script.HasRewrite() {
			nopts = append(nopts, normalize.WithRewriter(t.script))
		}
		n, err := normalize.New(rules.Tables, nopts...)
		if err != nil {
			t.Close()
			return nil, fmt.Errorf("failed to build normalizer: %w", err)
		}
		opts.Normalizer = n
	}

	if cfg.Filter {
		var extra filter.Predicate
		if t.script != nil && t.script.HasInclude() {
			extra = t.script
		}
		opts.Filter = filter.New(rules.Filter, extra)
	}

	t.pipeline = pipeline.New(opts)
	return t, nil
}

// runWithMetrics runs fn beside the optional metrics endpoint and resource
// sampler. Both stop once fn returns.
func runWithMetrics(ctx context.Context, fn func(context.Context) error) error {
	log := logger.Get()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.MetricsAddr, log)
		})
	}

	if cfg.MetricsInterval > 0 {
		collector := metrics.NewCollector(cfg.MetricsInterval, log)
		g.Go(func() error {
			collector.Start(gctx)
			return nil
		})
		log.Info("Resource sampling started", zap.Duration("interval", cfg.MetricsInterval))
	}

	g.Go(func() error {
		defer cancel()
		return fn(gctx)
	})

	return g.Wait()
}

func logStats(msg string, stats *pipeline.Stats) {
	if stats == nil {
		return
	}
	seconds := stats.Duration.Seconds()
	if seconds <= 0 {
		seconds = 1
	}
	logger.Get().Info(msg,
		zap.Int64("read", stats.Read),
		zap.Int64("dropped", stats.Dropped),
		zap.Int64("invalid", stats.Invalid),
		zap.Int64("written", stats.Written),
		zap.String("throughput", pipeline.FormatThroughput(float64(stats.Read)/seconds)),
	)
}
