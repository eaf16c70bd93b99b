package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
)

// StubSource is a test double for providers.Source.
type StubSource struct {
	Directory    trailheads.Directory
	DirectoryErr error
	Reports      map[string][]reports.ReportDate // keyed by region
	ReportErrs   map[string]error                // keyed by region

	DirectoryCalls atomic.Int32
	ReportCalls    atomic.Int32

	mu      sync.Mutex
	regions []string
}

// FetchDirectory returns the configured directory and error while tracking calls.
func (s *StubSource) FetchDirectory(ctx context.Context) (trailheads.Directory, error) {
	_ = ctx
	s.DirectoryCalls.Add(1)
	return s.Directory, s.DirectoryErr
}

// FetchReport returns the configured rows for region, or its configured error.
func (s *StubSource) FetchReport(ctx context.Context, region string) ([]reports.ReportDate, error) {
	_ = ctx
	s.ReportCalls.Add(1)
	s.mu.Lock()
	s.regions = append(s.regions, region)
	s.mu.Unlock()
	if err, ok := s.ReportErrs[region]; ok && err != nil {
		return nil, err
	}
	return s.Reports[region], nil
}

// RequestedRegions returns the regions requested so far, in call order.
func (s *StubSource) RequestedRegions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.regions...)
}
