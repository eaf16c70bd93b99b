package trailheads

import (
	"sort"
	"time"
)

// Trailhead is the normalized wilderness entry point with its permit allotments.
// Quota is the walk-up allotment; Capacity is the advance-reservation allotment.
type Trailhead struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Region   string `json:"region,omitempty"`
	Quota    int    `json:"quota"`
	Capacity int    `json:"capacity"`
	Alert    string `json:"alert,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// Directory is a read-only snapshot of trailheads keyed by id.
type Directory struct {
	Timestamp time.Time
	byID      map[string]Trailhead
}

// NewDirectory builds a snapshot. Later entries replace earlier ones with the same id.
func NewDirectory(timestamp time.Time, list []Trailhead) Directory {
	byID := make(map[string]Trailhead, len(list))
	for _, th := range list {
		byID[th.ID] = th
	}
	return Directory{Timestamp: timestamp, byID: byID}
}

// Lookup returns the trailhead for id.
func (d Directory) Lookup(id string) (Trailhead, bool) {
	th, ok := d.byID[id]
	return th, ok
}

// Len reports the number of trailheads in the snapshot.
func (d Directory) Len() int {
	return len(d.byID)
}

// Regions returns the distinct, non-empty region codes in lexical order.
func (d Directory) Regions() []string {
	seen := make(map[string]struct{})
	for _, th := range d.byID {
		if th.Region == "" {
			continue
		}
		seen[th.Region] = struct{}{}
	}
	regions := make([]string, 0, len(seen))
	for r := range seen {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}
