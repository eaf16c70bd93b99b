package fixture

import (
	"context"
	"testing"
	"time"
)

func TestFetchDirectoryReturnsDeterministicTrailheads(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	dir, err := p.FetchDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if dir.Len() != len(fixtureTrailheads) {
		t.Fatalf("expected %d trailheads, got %d", len(fixtureTrailheads), dir.Len())
	}
	if !dir.Timestamp.Equal(fixed.Truncate(time.Hour)) {
		t.Fatalf("unexpected timestamp %s", dir.Timestamp)
	}
	regions := dir.Regions()
	if len(regions) != 3 || regions[0] != "hetchy" {
		t.Fatalf("unexpected regions %v", regions)
	}
}

func TestFetchReportCoversRegionFromToday(t *testing.T) {
	fixed := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	p := New()
	p.now = func() time.Time { return fixed }

	rows, err := p.FetchReport(context.Background(), "tuolumne")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != reportDays {
		t.Fatalf("expected %d rows, got %d", reportDays, len(rows))
	}
	if got := rows[0].Date.Format("2006-01-02"); got != "2024-01-02" {
		t.Fatalf("expected first row today, got %s", got)
	}
	if _, ok := rows[0].Occupancy["t10"]; !ok {
		t.Fatalf("expected t10 occupancy, got %+v", rows[0].Occupancy)
	}
	if _, ok := rows[0].Occupancy["unlisted-tuolumne"]; !ok {
		t.Fatalf("expected unlisted trailhead in fixture report")
	}
	if _, ok := rows[0].Occupancy["w35"]; ok {
		t.Fatalf("did not expect other regions' trailheads")
	}
}

func TestFetchReportUnknownRegion(t *testing.T) {
	if _, err := New().FetchReport(context.Background(), "nowhere"); err == nil {
		t.Fatal("expected error for unknown region")
	}
}

func TestNewAtUsesClock(t *testing.T) {
	fixed := time.Date(2020, 9, 6, 12, 0, 0, 0, time.UTC)
	p := NewAt(func() time.Time { return fixed })

	rows, err := p.FetchReport(context.Background(), "hetchy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rows[0].Date.Format("2006-01-02"); got != "2020-09-06" {
		t.Fatalf("expected first row on 2020-09-06, got %s", got)
	}
	if p.Name() != "fixture" {
		t.Fatalf("unexpected name %q", p.Name())
	}
	if NewAt(nil).now == nil {
		t.Fatal("expected nil clock to fall back to time.Now")
	}
}
