// Package pipeline streams elements from a source through normalization,
// filtering and reshaping into an output
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wegman-software/osmclean/internal/element"
	"github.com/wegman-software/osmclean/internal/filter"
	"github.com/wegman-software/osmclean/internal/logger"
	"github.com/wegman-software/osmclean/internal/metrics"
	"github.com/wegman-software/osmclean/internal/normalize"
	"github.com/wegman-software/osmclean/internal/osmfile"
	"github.com/wegman-software/osmclean/internal/reshape"
	"github.com/wegman-software/osmclean/internal/sink"
)

// Stats holds run statistics
type Stats struct {
	Read     int64
	Dropped  int64
	Invalid  int64
	Written  int64
	Duration time.Duration
}

// Options configures a Pipeline. Nil stages are skipped.
type Options struct {
	Normalizer *normalize.Normalizer
	Filter     *filter.Filter
	// Reshaper is required by Build. Clean uses it to validate elements.
	Reshaper *reshape.Reshaper
	// Strict aborts on the first invalid element instead of skipping it
	Strict           bool
	ProgressInterval time.Duration
	// Output labels the written-elements metric
	Output string
	Logger *zap.Logger
}

// Pipeline processes one element at a time
type Pipeline struct {
	opts Options
	log  *zap.Logger
}

// New creates a pipeline
func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logger.Get()
	}
	if opts.Output == "" {
		opts.Output = "unknown"
	}
	return &Pipeline{opts: opts, log: log}
}

// Clean writes normalized, filtered elements back as elements
func (p *Pipeline) Clean(ctx context.Context, src osmfile.Source, w osmfile.ElementWriter) (*Stats, error) {
	return p.run(ctx, src, "Cleaning", func(e *element.Element) error {
		if p.opts.Reshaper != nil {
			if _, err := p.opts.Reshaper.Reshape(e); err != nil {
				return err
			}
		}
		return w.Write(e)
	})
}

// Build reshapes normalized, filtered elements into documents and writes them to s.
// The sink is flushed before Build returns successfully.
func (p *Pipeline) Build(ctx context.Context, src osmfile.Source, s sink.Sink) (*Stats, error) {
	if p.opts.Reshaper == nil {
		return nil, fmt.Errorf("pipeline has no reshaper")
	}
	stats, err := p.run(ctx, src, "Shaping", func(e *element.Element) error {
		doc, err := p.opts.Reshaper.Reshape(e)
		if err != nil {
			return err
		}
		return s.Write(ctx, doc)
	})
	if err != nil {
		return stats, err
	}
	if err := s.Flush(ctx); err != nil {
		return stats, fmt.Errorf("failed to flush output: %w", err)
	}
	return stats, nil
}

// skippable reports whether err only affects the current element
func skippable(err error) bool {
	return errors.Is(err, element.ErrInvalidRecord) || errors.Is(err, reshape.ErrAmbiguousCollision)
}

func (p *Pipeline) run(ctx context.Context, src osmfile.Source, description string, emit func(*element.Element) error) (*Stats, error) {
	start := time.Now()
	stats := &Stats{}
	progress := NewProgressTracker(description, p.opts.ProgressInterval)
	written := metrics.ElementsWritten.WithLabelValues(p.opts.Output)

	for src.Scan() {
		e := src.Element()
		stats.Read++
		metrics.ElementsRead.WithLabelValues(string(e.Kind)).Inc()

		if stats.Read%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if now := time.Now(); progress.Due(now) {
				p.logProgress(progress.Calculate(stats.Read, now), stats)
			}
		}

		if p.opts.Normalizer != nil {
			normalized, err := p.opts.Normalizer.Normalize(e)
			if err != nil {
				return stats, fmt.Errorf("normalize %s %s: %w", e.Kind, e.ID(), err)
			}
			e = normalized
		}

		if p.opts.Filter != nil {
			reason, err := p.opts.Filter.Check(e)
			if err != nil {
				return stats, err
			}
			if reason != "" {
				stats.Dropped++
				metrics.ElementsDropped.WithLabelValues(reason).Inc()
				continue
			}
		}

		if err := emit(e); err != nil {
			if !skippable(err) {
				return stats, err
			}
			if p.opts.Strict {
				return stats, err
			}
			stats.Invalid++
			metrics.ElementsInvalid.WithLabelValues(string(e.Kind)).Inc()
			p.log.Warn("Skipping invalid element", zap.Error(err))
			continue
		}
		stats.Written++
		written.Inc()
	}
	if err := src.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}

	stats.Duration = time.Since(start)
	p.log.Info(description+" complete",
		zap.Int64("read", stats.Read),
		zap.Int64("dropped", stats.Dropped),
		zap.Int64("invalid", stats.Invalid),
		zap.Int64("written", stats.Written),
		zap.Duration("duration", stats.Duration.Round(time.Millisecond)),
	)
	return stats, nil
}

func (p *Pipeline) logProgress(pr Progress, stats *Stats) {
	p.log.Info(pr.Description+" progress",
		zap.Int64("read", pr.Current),
		zap.Int64("dropped", stats.Dropped),
		zap.Int64("invalid", stats.Invalid),
		zap.Int64("written", stats.Written),
		zap.String("rate", FormatThroughput(pr.Rate)),
		zap.String("avg_rate", FormatThroughput(pr.Throughput)),
		zap.Duration("elapsed", pr.Elapsed),
	)
}
