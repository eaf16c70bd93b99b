package testutil

import (
	"testing"
	"time"
)

func TestClockHelpers(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := NowAt(now)(); !got.Equal(now) {
		t.Fatalf("expected fixed time, got %v", got)
	}
	if got := MustParseDate("2020-09-06"); !got.Equal(time.Date(2020, 9, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected UTC midnight, got %v", got)
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on invalid date")
		}
	}()
	MustParseDate("09/06/2020")
}

func TestFixturesHelper(t *testing.T) {
	dir := SampleDirectory()
	if dir.Len() != 3 {
		t.Fatalf("expected 3 trailheads, got %d", dir.Len())
	}
	th, ok := dir.Lookup("w35")
	if !ok || th.Name != "Alder Creek" || th.Capacity != 30 || th.Quota != 18 {
		t.Fatalf("unexpected trailhead %+v", th)
	}
	if got := dir.Regions(); len(got) != 3 || got[0] != "hetchy" {
		t.Fatalf("unexpected regions %v", got)
	}
}

func TestLoggerHelper(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Info("hello", "k", "v")
	if buf.Len() == 0 {
		t.Fatalf("expected buffered log output")
	}
}
