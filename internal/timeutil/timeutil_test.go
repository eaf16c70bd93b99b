package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, err := ParseDate("01/02/2024"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestTodayInUsesLocationCalendarDate(t *testing.T) {
	pacific, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	// 03:00 UTC on Sept 7 is still Sept 6 in Pacific time.
	now := time.Date(2020, 9, 7, 3, 0, 0, 0, time.UTC)

	got := TodayIn(now, pacific)
	want := time.Date(2020, 9, 6, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestTodayInDefaultsToUTC(t *testing.T) {
	now := time.Date(2020, 9, 7, 3, 0, 0, 0, time.UTC)
	if got := FormatDate(TodayIn(now, nil)); got != "2020-09-07" {
		t.Fatalf("expected UTC date, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	today := time.Date(2020, 9, 6, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		to   time.Time
		want int
	}{
		{time.Date(2020, 9, 6, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2020, 9, 10, 0, 0, 0, 0, time.UTC), 4},
		{time.Date(2020, 10, 1, 0, 0, 0, 0, time.UTC), 25},
		{time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), -5},
	}
	for _, c := range cases {
		if got := DaysBetween(today, c.to); got != c.want {
			t.Fatalf("expected %d days to %s, got %d", c.want, FormatDate(c.to), got)
		}
	}
}
