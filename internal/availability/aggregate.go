package availability

import (
	"sort"
	"time"
)

// Table maps date -> trailhead name -> availability. Iteration is ordered by
// date, then name. Only positive availability is ever stored.
type Table struct {
	byDate map[time.Time]map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{byDate: make(map[time.Time]map[string]int)}
}

// Aggregate inserts entries in order; a later entry with the same date and
// name replaces the earlier one.
func Aggregate(entries []Entry) *Table {
	t := NewTable()
	for _, e := range entries {
		t.Insert(e)
	}
	return t
}

// Insert adds e, replacing any existing value for the same date and name.
// Entries with non-positive availability are ignored.
func (t *Table) Insert(e Entry) {
	if e.Availability <= 0 {
		return
	}
	key := dateKey(e.Date)
	names, ok := t.byDate[key]
	if !ok {
		names = make(map[string]int)
		t.byDate[key] = names
	}
	names[e.Name] = e.Availability
}

// Dates returns the dates present, in chronological order.
func (t *Table) Dates() []time.Time {
	dates := make([]time.Time, 0, len(t.byDate))
	for d := range t.byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Len returns the number of (date, name) cells.
func (t *Table) Len() int {
	n := 0
	for _, names := range t.byDate {
		n += len(names)
	}
	return n
}

// Rows materializes the table ordered by date, then trailhead name.
func (t *Table) Rows() []Entry {
	rows := make([]Entry, 0, t.Len())
	for _, d := range t.Dates() {
		names := t.byDate[d]
		keys := make([]string, 0, len(names))
		for name := range names {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		for _, name := range keys {
			rows = append(rows, Entry{Date: d, Name: name, Availability: names[name]})
		}
	}
	return rows
}

// dateKey reduces t to its calendar date so equal days share a key regardless
// of clock time or location.
func dateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
