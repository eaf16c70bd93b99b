// Package collector runs one fetch-reconcile-aggregate cycle: the directory is
// fetched first, then every region's report is fetched concurrently.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/permit-availability/internal/availability"
	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
	"github.com/preston-bernstein/permit-availability/internal/logging"
	"github.com/preston-bernstein/permit-availability/internal/metrics"
	"github.com/preston-bernstein/permit-availability/internal/providers"
	"github.com/preston-bernstein/permit-availability/internal/timeutil"
)

// Options tune a Collector. Zero values select defaults.
type Options struct {
	// Location defines "today" for the walk-up window. Defaults to UTC.
	Location *time.Location
	// WindowDays defaults to availability.WalkUpWindowDays.
	WindowDays int
	// Concurrency caps in-flight report fetches; 0 means one per region.
	Concurrency int
	// Today overrides the reference date when non-zero.
	Today time.Time
}

// RegionResult is the outcome of one region's report fetch.
type RegionResult struct {
	Region  string
	Reports []reports.ReportDate
	Err     error
}

// Result is everything a run produced.
type Result struct {
	Directory trailheads.Directory
	Today     time.Time
	Regions   []RegionResult
	Entries   int
	Table     *availability.Table
}

// Failed returns the regions whose reports were dropped.
func (r Result) Failed() []string {
	var failed []string
	for _, rr := range r.Regions {
		if rr.Err != nil {
			failed = append(failed, rr.Region)
		}
	}
	return failed
}

// Collector coordinates a single run against a Source.
type Collector struct {
	source  providers.Source
	logger  *slog.Logger
	metrics *metrics.Recorder
	opts    Options
	now     func() time.Time
}

// New constructs a Collector with sane defaults.
func New(source providers.Source, logger *slog.Logger, recorder *metrics.Recorder, opts Options) *Collector {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = availability.WalkUpWindowDays
	}
	if opts.Concurrency < 0 {
		opts.Concurrency = 0
	}
	return &Collector{
		source:  source,
		logger:  logger,
		metrics: recorder,
		opts:    opts,
		now:     time.Now,
	}
}

// Run fetches the directory and all region reports, then reconciles and
// aggregates them. A directory failure or a schema violation in any report
// aborts the run; other per-region failures only drop that region.
func (c *Collector) Run(ctx context.Context) (res Result, err error) {
	start := time.Now()
	defer func() {
		rows := 0
		if res.Table != nil {
			rows = res.Table.Len()
		}
		c.metrics.RecordRun(time.Since(start), rows, err)
	}()

	if c.source == nil {
		return Result{}, providers.ErrSourceUnavailable
	}

	dir, err := c.source.FetchDirectory(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch trailhead directory: %w", err)
	}

	regions := dir.Regions()
	c.logInfo(ctx, "trailhead directory loaded",
		slog.Int(logging.FieldCount, dir.Len()),
		slog.Int("regions", len(regions)),
	)

	results := c.fetchReports(ctx, regions)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	today := c.today()
	reconciler := availability.Reconciler{Directory: dir, Today: today, WindowDays: c.opts.WindowDays}

	var entries []availability.Entry
	for _, rr := range results {
		if rr.Err != nil {
			if sErr, ok := providers.AsSchemaViolation(rr.Err); ok {
				return Result{}, fmt.Errorf("report for region %s: %w", rr.Region, sErr)
			}
			c.metrics.RecordRegionFailure(rr.Region)
			c.logWarn(ctx, "region report dropped", rr.Err,
				append(failureAttrs(rr.Err), slog.String(logging.FieldRegion, rr.Region))...)
			continue
		}
		reconciled := reconciler.ReconcileReports(rr.Reports)
		logging.Debug(logging.FromContext(ctx, c.logger), "region report reconciled",
			slog.String(logging.FieldRegion, rr.Region),
			slog.Int("dates", len(rr.Reports)),
			slog.Int("entries", len(reconciled)),
		)
		entries = append(entries, reconciled...)
	}

	table := availability.Aggregate(entries)
	res = Result{
		Directory: dir,
		Today:     today,
		Regions:   results,
		Entries:   len(entries),
		Table:     table,
	}

	c.logInfo(ctx, "availability collected",
		slog.String(logging.FieldDate, timeutil.FormatDate(today)),
		slog.Int("regions_failed", len(res.Failed())),
		slog.Int("entries", len(entries)),
		slog.Int(logging.FieldCount, table.Len()),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return res, nil
}

// fetchReports issues one fetch per region and returns results in region order.
// Each goroutine owns its slot, so no locking is needed.
func (c *Collector) fetchReports(ctx context.Context, regions []string) []RegionResult {
	results := make([]RegionResult, len(regions))

	var g errgroup.Group
	if c.opts.Concurrency > 0 {
		g.SetLimit(c.opts.Concurrency)
	}
	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			rows, err := c.source.FetchReport(ctx, region)
			results[i] = RegionResult{Region: region, Reports: rows, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// failureAttrs classifies a dropped region's error for the warning log.
func failureAttrs(err error) []any {
	if tErr, ok := providers.AsTransportError(err); ok {
		attrs := []any{slog.String("failure", "transport")}
		if tErr.StatusCode > 0 {
			attrs = append(attrs, slog.Int("status_code", tErr.StatusCode))
		}
		return attrs
	}
	if uErr, ok := providers.AsUnexpectedResponse(err); ok {
		return []any{
			slog.String("failure", "unexpected_response"),
			slog.String("status_type", uErr.Type),
			slog.String("status_value", uErr.Value),
		}
	}
	return []any{slog.String("failure", "other")}
}

func (c *Collector) today() time.Time {
	if !c.opts.Today.IsZero() {
		return timeutil.TodayIn(c.opts.Today, time.UTC)
	}
	return timeutil.TodayIn(c.now(), c.opts.Location)
}

func (c *Collector) logInfo(ctx context.Context, msg string, args ...any) {
	logging.Info(logging.FromContext(ctx, c.logger), msg, args...)
}

func (c *Collector) logWarn(ctx context.Context, msg string, err error, args ...any) {
	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return
	}
	logger.Warn(msg, append(args, slog.Any("error", err))...)
}
