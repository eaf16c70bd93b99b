// Package availability reconciles occupancy reports against trailhead
// metadata and aggregates the remaining permits into an ordered table.
package availability

import (
	"sort"
	"time"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
	"github.com/preston-bernstein/permit-availability/internal/timeutil"
)

// WalkUpWindowDays is the default number of days after today during which the
// full capacity applies. Later dates are bounded by the quota.
const WalkUpWindowDays = 15

// Entry is one reconciled (date, trailhead, availability) triple.
type Entry struct {
	Date         time.Time
	Name         string
	Availability int
}

// Reconciler applies the capacity rule against a fixed reference date.
type Reconciler struct {
	Directory  trailheads.Directory
	Today      time.Time
	WindowDays int
}

// NewReconciler builds a Reconciler using the default walk-up window.
func NewReconciler(dir trailheads.Directory, today time.Time) Reconciler {
	return Reconciler{Directory: dir, Today: today, WindowDays: WalkUpWindowDays}
}

// Reconcile computes availability for one occupancy record with the default window.
func Reconcile(date time.Time, id string, occupancy int, dir trailheads.Directory, today time.Time) (Entry, bool) {
	return NewReconciler(dir, today).Reconcile(date, id, occupancy)
}

// CapacityFor returns the bound that applies to th on date: the quota when
// date is more than windowDays after today, the capacity otherwise.
func CapacityFor(th trailheads.Trailhead, date, today time.Time, windowDays int) int {
	if timeutil.DaysBetween(today, date) > windowDays {
		return th.Quota
	}
	return th.Capacity
}

// Reconcile returns the entry for id on date, or false when the id is not in
// the directory or nothing remains.
func (r Reconciler) Reconcile(date time.Time, id string, occupancy int) (Entry, bool) {
	// Some reported ids are unlisted trailheads with no name or capacity.
	th, ok := r.Directory.Lookup(id)
	if !ok {
		return Entry{}, false
	}

	bound := CapacityFor(th, date, r.Today, r.WindowDays)
	// Overbooking happens upstream; clamp so availability never goes negative.
	availability := bound - min(bound, occupancy)
	if availability <= 0 {
		return Entry{}, false
	}
	return Entry{Date: date, Name: th.Name, Availability: availability}, true
}

// ReconcileReports reconciles every occupancy record in rows. Ids within a row
// are visited in lexical order so name collisions resolve the same way each run.
func (r Reconciler) ReconcileReports(rows []reports.ReportDate) []Entry {
	var out []Entry
	for _, row := range rows {
		ids := make([]string, 0, len(row.Occupancy))
		for id := range row.Occupancy {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			if entry, ok := r.Reconcile(row.Date, id, row.Occupancy[id]); ok {
				out = append(out, entry)
			}
		}
	}
	return out
}
