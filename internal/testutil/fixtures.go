package testutil

import (
	"time"

	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
)

// SampleTrailheads returns one trailhead per region across three regions.
func SampleTrailheads() []trailheads.Trailhead {
	return []trailheads.Trailhead{
		{ID: "w35", Name: "Alder Creek", Region: "wawona", Quota: 18, Capacity: 30},
		{ID: "h01", Name: "Rancheria Falls", Region: "hetchy", Quota: 8, Capacity: 12},
		{ID: "t10", Name: "Lyell Canyon", Region: "tuolumne", Quota: 24, Capacity: 40},
	}
}

// SampleDirectory wraps SampleTrailheads in a directory snapshot.
func SampleDirectory() trailheads.Directory {
	return trailheads.NewDirectory(time.Date(2020, 9, 6, 8, 15, 0, 0, time.UTC), SampleTrailheads())
}
