package providers

import (
	"context"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
)

// Resource names used by the upstream query endpoint and in logs/metrics.
const (
	ResourceTrailheads = "trailheads"
	ResourceReport     = "report"
)

// DirectorySource fetches the trailhead directory snapshot.
type DirectorySource interface {
	FetchDirectory(ctx context.Context) (trailheads.Directory, error)
}

// ReportSource fetches the normalized daily occupancy report for one region.
// Implementations must be safe for concurrent calls with different regions.
type ReportSource interface {
	FetchReport(ctx context.Context, region string) ([]reports.ReportDate, error)
}

// Source combines both capabilities.
type Source interface {
	DirectorySource
	ReportSource
}
