package reports

import "time"

// ReportDate is one region report row after normalization: the occupancy
// (permits already issued) per trailhead id for a single calendar date.
// Trailheads absent from Occupancy had no data for that date.
type ReportDate struct {
	Date      time.Time      `json:"date"`
	Occupancy map[string]int `json:"occupancy"`
}
