// Package output renders the availability table.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/preston-bernstein/permit-availability/internal/availability"
	"github.com/preston-bernstein/permit-availability/internal/timeutil"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Row is the JSON shape of one availability entry.
type Row struct {
	Date         string `json:"date"`
	Trailhead    string `json:"trailhead"`
	Availability int    `json:"availability"`
}

// Write renders rows in the named format. Rows are written in the order given.
func Write(w io.Writer, format string, rows []availability.Entry) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return WriteCSV(w, rows)
	case FormatJSON:
		return WriteJSON(w, rows)
	default:
		return fmt.Errorf("output: unknown format %q", format)
	}
}

// WriteCSV writes one date,name,availability record per row with no header.
func WriteCSV(w io.Writer, rows []availability.Entry) error {
	cw := csv.NewWriter(w)
	for _, r := range rows {
		rec := []string{timeutil.FormatDate(r.Date), r.Name, strconv.Itoa(r.Availability)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("output: write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("output: flush csv: %w", err)
	}
	return nil
}

// WriteJSON writes rows as a single JSON array. An empty table is "[]".
func WriteJSON(w io.Writer, rows []availability.Entry) error {
	payload := make([]Row, 0, len(rows))
	for _, r := range rows {
		payload = append(payload, Row{
			Date:         timeutil.FormatDate(r.Date),
			Trailhead:    r.Name,
			Availability: r.Availability,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("output: encode json: %w", err)
	}
	return nil
}
