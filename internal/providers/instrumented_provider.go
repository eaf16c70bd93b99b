package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
	"github.com/preston-bernstein/permit-availability/internal/logging"
	"github.com/preston-bernstein/permit-availability/internal/metrics"
)

// instrumentedSource records latency and failures for every upstream call.
type instrumentedSource struct {
	inner   Source
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewInstrumentedSource wraps inner so each call is logged and recorded under name.
func NewInstrumentedSource(inner Source, logger *slog.Logger, recorder *metrics.Recorder, name string) Source {
	if name == "" {
		name = "source"
	}
	return &instrumentedSource{
		inner:   inner,
		name:    name,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

func (s *instrumentedSource) FetchDirectory(ctx context.Context) (trailheads.Directory, error) {
	if s.inner == nil {
		return trailheads.Directory{}, ErrSourceUnavailable
	}
	start := s.now()
	dir, err := s.inner.FetchDirectory(ctx)
	s.observe(ctx, ResourceTrailheads, "", start, err, slog.Int(logging.FieldCount, dir.Len()))
	return dir, err
}

func (s *instrumentedSource) FetchReport(ctx context.Context, region string) ([]reports.ReportDate, error) {
	if s.inner == nil {
		return nil, ErrSourceUnavailable
	}
	start := s.now()
	rows, err := s.inner.FetchReport(ctx, region)
	s.observe(ctx, ResourceReport, region, start, err, slog.Int(logging.FieldCount, len(rows)))
	return rows, err
}

func (s *instrumentedSource) observe(ctx context.Context, resource, region string, start time.Time, err error, extra ...any) {
	elapsed := s.now().Sub(start)
	s.metrics.RecordSourceCall(s.name, resource, elapsed, err)

	args := []any{
		slog.String(logging.FieldResource, resource),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	}
	if region != "" {
		args = append(args, slog.String(logging.FieldRegion, region))
	}
	if err != nil {
		args = append(args, slog.Any("error", err))
		logWithSource(ctx, s.logger, slog.LevelWarn, s.name, "source fetch failed", args...)
		return
	}
	args = append(args, extra...)
	logWithSource(ctx, s.logger, slog.LevelDebug, s.name, "source fetch complete", args...)
}
