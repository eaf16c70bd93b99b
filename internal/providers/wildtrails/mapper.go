package wildtrails

import (
	"encoding/json"
	"strings"

	"github.com/preston-bernstein/permit-availability/internal/domain/reports"
	"github.com/preston-bernstein/permit-availability/internal/domain/trailheads"
	"github.com/preston-bernstein/permit-availability/internal/providers"
)

func mapDirectory(resp trailheadsResponse) trailheads.Directory {
	list := make([]trailheads.Trailhead, 0, len(resp.Values))
	for key, th := range resp.Values {
		list = append(list, mapTrailhead(key, th))
	}
	return trailheads.NewDirectory(resp.Timestamp.Time, list)
}

// mapTrailhead keys the trailhead by its values-map key, which is the id
// reports use. Display fields are passed through verbatim.
func mapTrailhead(key string, th trailheadResponse) trailheads.Trailhead {
	return trailheads.Trailhead{
		ID:       key,
		Name:     th.Name,
		Region:   strings.TrimSpace(deref(th.Region)),
		Quota:    th.Quota,
		Capacity: th.Capacity,
		Alert:    deref(th.Alert),
		Notes:    deref(th.Notes),
	}
}

// normalizeRow turns one raw report row into a ReportDate.
// ok is false when the row has no date key; such rows carry nothing usable.
// A date key holding anything but a date is a schema violation. Other keys
// that do not hold a count are dropped.
func normalizeRow(region string, row map[string]json.RawMessage) (reports.ReportDate, bool, error) {
	rawDate, ok := row[dateKey]
	if !ok {
		return reports.ReportDate{}, false, nil
	}

	var date reportValue
	if err := json.Unmarshal(rawDate, &date); err != nil || date.kind != valueDate {
		return reports.ReportDate{}, false, &providers.SchemaViolationError{
			Region: region,
			Key:    dateKey,
			Raw:    string(rawDate),
		}
	}

	occupancy := make(map[string]int, len(row)-1)
	for id, raw := range row {
		if id == dateKey {
			continue
		}
		var v reportValue
		if err := json.Unmarshal(raw, &v); err != nil || v.kind != valueCount {
			continue
		}
		occupancy[id] = v.count
	}

	return reports.ReportDate{Date: date.date, Occupancy: occupancy}, true, nil
}

func normalizeReport(region string, resp reportResponse) ([]reports.ReportDate, error) {
	out := make([]reports.ReportDate, 0, len(resp.Values))
	for _, row := range resp.Values {
		rd, ok, err := normalizeRow(region, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rd)
		}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
