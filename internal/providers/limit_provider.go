package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
)

// rateLimitedSource wraps a Source and spaces upstream calls with a token bucket.
type rateLimitedSource struct {
	next    Source
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedSource returns a Source that allows at most rps calls per second
// (burst 1). A non-positive rps disables limiting and returns next unchanged.
// Calls block until a token is available or ctx is done.
func NewRateLimitedSource(next Source, rps float64, logger *slog.Logger) Source {
	if rps <= 0 {
		return next
	}
	return &rateLimitedSource{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}
}

func (s *rateLimitedSource) FetchDirectory(ctx context.Context) (trailheads.Directory, error) {
	if err := s.wait(ctx, ResourceTrailheads, ""); err != nil {
		return trailheads.Directory{}, err
	}
	return s.next.FetchDirectory(ctx)
}

func (s *rateLimitedSource) FetchReport(ctx context.Context, region string) ([]reports.ReportDate, error) {
	if err := s.wait(ctx, ResourceReport, region); err != nil {
		return nil, err
	}
	return s.next.FetchReport(ctx, region)
}

func (s *rateLimitedSource) wait(ctx context.Context, resource, region string) error {
	if s.next == nil {
		logWithSource(ctx, s.logger, slog.LevelWarn, "rate-limited", "source unavailable")
		return ErrSourceUnavailable
	}
	if err := s.limiter.Wait(ctx); err != nil {
		logWithSource(ctx, s.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled",
			slog.String("resource", resource), slog.String("region", region))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}
