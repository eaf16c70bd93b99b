package wildtrails

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/permit-availability/internal/timeutil"
)

// envelope is the wrapper every query.php response uses. Response stays raw
// until the status has been checked, since failures carry a different shape.
type envelope struct {
	Status   statusResponse  `json:"status"`
	Response json.RawMessage `json:"response"`
}

type statusResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type trailheadsResponse struct {
	Timestamp timestamp                    `json:"timestamp"`
	Values    map[string]trailheadResponse `json:"values"`
}

type trailheadResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Region   *string `json:"region"`
	Quota    int     `json:"quota"`
	Capacity int     `json:"capacity"`
	Alert    *string `json:"alert"`
	Notes    *string `json:"notes"`
}

type reportResponse struct {
	ID     string                       `json:"id"`
	Values []map[string]json.RawMessage `json:"values"`
}

var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
}

// timestamp accepts the zone-less datetime the API emits as well as RFC3339.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", raw)
}

type valueKind int

const (
	valueDate valueKind = iota + 1
	valueCount
)

// reportValue is one cell of a report row: either a calendar date or a
// non-negative occupancy count. Decoding picks the case from the JSON shape
// and fails when neither fits.
type reportValue struct {
	kind  valueKind
	date  time.Time
	count int
}

func (v *reportValue) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("report value: null")
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("report value: %w", err)
		}
		date, err := timeutil.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("report value: %q is not a date", raw)
		}
		*v = reportValue{kind: valueDate, date: date}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("report value: %w", err)
	}
	if strings.HasPrefix(num.String(), "-") {
		return fmt.Errorf("report value: negative count %s", num)
	}
	n, err := strconv.Atoi(num.String())
	if err != nil {
		return fmt.Errorf("report value: %s is not an integer", num)
	}
	*v = reportValue{kind: valueCount, count: n}
	return nil
}
