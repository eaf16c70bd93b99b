package wildtrails

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/preston-bernstein/permit-availability/internal/providers"
)

func rawRow(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var row map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &row); err != nil {
		t.Fatalf("bad test row %s: %v", body, err)
	}
	return row
}

func TestNormalizeRowExtractsDateAndCounts(t *testing.T) {
	rd, ok, err := normalizeRow("wawona", rawRow(t, `{"date":"2020-09-10","w35":5,"w36":0}`))
	if err != nil || !ok {
		t.Fatalf("expected row, got ok=%v err=%v", ok, err)
	}
	if got := rd.Date.Format("2006-01-02"); got != "2020-09-10" {
		t.Fatalf("unexpected date %s", got)
	}
	if want := map[string]int{"w35": 5, "w36": 0}; !reflect.DeepEqual(rd.Occupancy, want) {
		t.Fatalf("expected occupancy %v, got %v", want, rd.Occupancy)
	}
}

func TestNormalizeRowWithoutDateIsDropped(t *testing.T) {
	rd, ok, err := normalizeRow("wawona", rawRow(t, `{"w35":5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || rd.Occupancy != nil {
		t.Fatalf("expected row to be dropped, got %+v", rd)
	}
}

func TestNormalizeRowDropsMalformedValues(t *testing.T) {
	rd, ok, err := normalizeRow("wawona", rawRow(t, `{
		"date": "2020-09-10",
		"w35": 5,
		"neg": -1,
		"frac": 2.5,
		"str": "7",
		"when": "2020-09-11",
		"nil": null,
		"obj": {"n": 1},
		"bool": true
	}`))
	if err != nil || !ok {
		t.Fatalf("expected row, got ok=%v err=%v", ok, err)
	}
	if want := map[string]int{"w35": 5}; !reflect.DeepEqual(rd.Occupancy, want) {
		t.Fatalf("expected only well-formed counts, got %v", rd.Occupancy)
	}
}

func TestNormalizeRowDateWithWrongShapeIsSchemaViolation(t *testing.T) {
	for _, body := range []string{
		`{"date":12,"w35":5}`,
		`{"date":"tomorrow","w35":5}`,
		`{"date":null}`,
	} {
		_, ok, err := normalizeRow("hetchy", rawRow(t, body))
		if ok {
			t.Fatalf("body %s: expected row to be rejected", body)
		}
		sErr, isViolation := providers.AsSchemaViolation(err)
		if !isViolation {
			t.Fatalf("body %s: expected schema violation, got %v", body, err)
		}
		if sErr.Region != "hetchy" || sErr.Key != dateKey {
			t.Fatalf("body %s: unexpected violation %+v", body, sErr)
		}
	}
}

func TestNormalizeReportStopsOnSchemaViolation(t *testing.T) {
	resp := reportResponse{
		ID: "wawona",
		Values: []map[string]json.RawMessage{
			rawRow(t, `{"date":"2020-09-10","w35":5}`),
			rawRow(t, `{"date":5}`),
		},
	}
	rows, err := normalizeReport("wawona", resp)
	if rows != nil {
		t.Fatalf("expected no rows, got %v", rows)
	}
	if _, ok := providers.AsSchemaViolation(err); !ok {
		t.Fatalf("expected schema violation, got %v", err)
	}
}

func TestMapTrailheadKeysByMapKey(t *testing.T) {
	th := mapTrailhead("k1", trailheadResponse{ID: "other", Name: "Alder Creek", Quota: 18, Capacity: 30})
	if th.ID != "k1" {
		t.Fatalf("expected map key as id, got %q", th.ID)
	}

	dir := mapDirectory(trailheadsResponse{Values: map[string]trailheadResponse{
		"k1": {ID: "other", Name: "Alder Creek"},
	}})
	if _, ok := dir.Lookup("k1"); !ok {
		t.Fatal("expected lookup by map key to succeed")
	}
	if _, ok := dir.Lookup("other"); ok {
		t.Fatal("expected inner id not to be indexed")
	}
}

func TestMapTrailheadKeepsDisplayFieldsVerbatim(t *testing.T) {
	region := " wawona "
	alert := "  Bear activity "
	th := mapTrailhead("w35", trailheadResponse{Name: " Alder Creek ", Region: &region, Alert: &alert, Quota: 18, Capacity: 30})

	if th.Name != " Alder Creek " {
		t.Fatalf("expected name untouched, got %q", th.Name)
	}
	if th.Alert != "  Bear activity " {
		t.Fatalf("expected alert untouched, got %q", th.Alert)
	}
	if th.Region != "wawona" {
		t.Fatalf("expected region code trimmed, got %q", th.Region)
	}
	if th.Notes != "" {
		t.Fatalf("expected empty notes for missing field, got %q", th.Notes)
	}
}
