package providers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/metrics"
	"github.com/preston-bernstein/permit-availability/internal/teststubs"
	"github.com/preston-bernstein/permit-availability/internal/testutil"
)

func TestInstrumentedSourceRecordsCalls(t *testing.T) {
	boom := errors.New("boom")
	inner := &teststubs.StubSource{
		Reports:    map[string][]reports.ReportDate{"wawona": {{}, {}}},
		ReportErrs: map[string]error{"hetch": boom},
	}
	rec := metrics.NewRecorder()
	logger, buf := testutil.NewBufferLogger()

	src := NewInstrumentedSource(inner, logger, rec, "wildtrails").(*instrumentedSource)
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src.now = func() time.Time {
		tick = tick.Add(5 * time.Millisecond)
		return tick
	}

	if _, err := src.FetchDirectory(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rows, err := src.FetchReport(context.Background(), "wawona"); err != nil || len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d %v", len(rows), err)
	}
	if _, err := src.FetchReport(context.Background(), "hetch"); !errors.Is(err, boom) {
		t.Fatalf("expected inner error to pass through, got %v", err)
	}

	dirStats := rec.Snapshot("wildtrails", ResourceTrailheads)
	if dirStats.Calls != 1 || dirStats.Errors != 0 {
		t.Fatalf("unexpected directory stats %+v", dirStats)
	}
	reportStats := rec.Snapshot("wildtrails", ResourceReport)
	if reportStats.Calls != 2 || reportStats.Errors != 1 {
		t.Fatalf("unexpected report stats %+v", reportStats)
	}
	if reportStats.LastCallLatency != 5*time.Millisecond {
		t.Fatalf("expected 5ms latency, got %s", reportStats.LastCallLatency)
	}

	out := buf.String()
	if !strings.Contains(out, "source fetch failed") || !strings.Contains(out, "region=hetch") {
		t.Fatalf("expected failure log with region, got %q", out)
	}
}

func TestInstrumentedSourceNilInner(t *testing.T) {
	src := NewInstrumentedSource(nil, nil, nil, "")
	if _, err := src.FetchDirectory(context.Background()); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
	if _, err := src.FetchReport(context.Background(), "x"); !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}
