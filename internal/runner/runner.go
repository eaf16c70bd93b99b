// Package runner wires configuration, telemetry, the upstream source and the
// collector into a single run that prints the availability table.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/preston-bernstein/permit-availability/internal/collector"
	"github.com/preston-bernstein/permit-availability/internal/config"
	"github.com/preston-bernstein/permit-availability/internal/logging"
	"github.com/preston-bernstein/permit-availability/internal/metrics"
	"github.com/preston-bernstein/permit-availability/internal/output"
	"github.com/preston-bernstein/permit-availability/internal/providers"
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second

var newRunID = func() string { return uuid.NewString() }

// Options carries per-invocation overrides that do not belong in Config.
type Options struct {
	// Today pins the reference date; zero means the current date in the configured timezone.
	Today time.Time
	// HTTPClient replaces the default client built from Upstream.HTTPTimeout.
	HTTPClient *http.Client
}

// Runner executes one collection run end to end.
type Runner struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
	opts   Options
	// source bypasses the factory when set.
	source providers.Source
}

// New constructs a runner that writes the table to out.
func New(cfg config.Config, logger *slog.Logger, out io.Writer, opts Options) *Runner {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	return &Runner{cfg: cfg, logger: logger, out: out, opts: opts}
}

func newRunnerWithSource(cfg config.Config, logger *slog.Logger, out io.Writer, opts Options, source providers.Source) *Runner {
	r := New(cfg, logger, out, opts)
	r.source = source
	return r
}

// Run fetches, reconciles and prints availability once. Telemetry is flushed
// before returning, even on failure.
func (r *Runner) Run(ctx context.Context) error {
	loc, err := r.cfg.Location()
	if err != nil {
		return err
	}

	logger := r.logger.With(slog.String(logging.FieldRunID, newRunID()))
	ctx = logging.WithContext(ctx, logger)

	recorder, gatherer, stopMetrics := buildMetrics(ctx, r.cfg, logger)
	defer r.shutdown(logger, gatherer, stopMetrics)

	source := r.source
	if source == nil {
		source, err = newSourceFactory(logger, recorder, r.opts).build(r.cfg)
		if err != nil {
			return err
		}
	}

	logging.Info(logger, "run starting",
		slog.String(logging.FieldSource, r.cfg.Source),
		slog.String("timezone", loc.String()),
	)

	c := collector.New(source, logger, recorder, collector.Options{
		Location:    loc,
		WindowDays:  r.cfg.WindowDays,
		Concurrency: r.cfg.Upstream.Concurrency,
		Today:       r.opts.Today,
	})
	res, err := c.Run(ctx)
	if err != nil {
		logging.Error(logger, "run failed", err)
		return err
	}

	if err := output.Write(r.out, r.cfg.Format, res.Table.Rows()); err != nil {
		return fmt.Errorf("write availability: %w", err)
	}
	return nil
}

func (r *Runner) shutdown(logger *slog.Logger, gatherer prometheus.Gatherer, stop func(context.Context) error) {
	if err := metrics.WriteTextfile(r.cfg.Metrics.Textfile, gatherer); err != nil {
		logging.Warn(logger, "metrics textfile not written", slog.Any("error", err))
	}
	if stop == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(shutdownCtx); err != nil {
		logging.Warn(logger, "metrics shutdown failed", slog.Any("error", err))
	}
}
