package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
	"github.com/preston-bernstein/permit-availability/internal/timeutil"
)

// reportDays is how many consecutive dates each fixture report covers, starting today.
const reportDays = 21

// Provider returns a static directory and synthetic reports useful for local
// runs without a session cookie.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return NewAt(time.Now)
}

// NewAt creates a fixture provider whose reports start at now().
func NewAt(now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{now: now}
}

// Name identifies the source in logs and metrics.
func (p *Provider) Name() string { return "fixture" }

var fixtureTrailheads = []trailheads.Trailhead{
	{ID: "w35", Name: "Alder Creek", Region: "wawona", Quota: 18, Capacity: 30},
	{ID: "w36", Name: "Chilnualna Falls", Region: "wawona", Quota: 10, Capacity: 15, Notes: "Trailhead parking is limited."},
	{ID: "h01", Name: "Rancheria Falls", Region: "hetchy", Quota: 8, Capacity: 12},
	{ID: "t10", Name: "Lyell Canyon", Region: "tuolumne", Quota: 24, Capacity: 40, Alert: "Bear activity reported near the first bridge."},
	{ID: "t11", Name: "Cathedral Lakes", Region: "tuolumne", Quota: 12, Capacity: 20},
}

// FetchDirectory returns the deterministic trailhead directory.
func (p *Provider) FetchDirectory(ctx context.Context) (trailheads.Directory, error) {
	_ = ctx
	return trailheads.NewDirectory(p.now().UTC().Truncate(time.Hour), fixtureTrailheads), nil
}

// FetchReport returns reportDays rows for region with occupancy derived from the
// day offset, so some trailheads fill up and one unlisted id is always present.
func (p *Provider) FetchReport(ctx context.Context, region string) ([]reports.ReportDate, error) {
	_ = ctx

	var ids []trailheads.Trailhead
	for _, th := range fixtureTrailheads {
		if th.Region == region {
			ids = append(ids, th)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("fixture: unknown region %q", region)
	}

	start := timeutil.TodayIn(p.now(), time.UTC)
	rows := make([]reports.ReportDate, 0, reportDays)
	for day := 0; day < reportDays; day++ {
		occupancy := make(map[string]int, len(ids)+1)
		for i, th := range ids {
			occupancy[th.ID] = (day*3 + i*7) % (th.Capacity + 5)
		}
		occupancy["unlisted-"+region] = day
		rows = append(rows, reports.ReportDate{
			Date:      start.AddDate(0, 0, day),
			Occupancy: occupancy,
		})
	}
	return rows, nil
}
