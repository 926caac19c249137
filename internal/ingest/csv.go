// Package ingest parses raw tabular wind observations into the domain types.
// The source tables come from station loggers with Portuguese column names
// (estacao, data, direcao, velocidade, altura); English equivalents are also
// accepted.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atmos-data/windrose.report/internal/monitoring"
	"github.com/atmos-data/windrose.report/internal/wind"
)

// columnAliases maps accepted header names to canonical columns.
var columnAliases = map[string]string{
	"estacao":       "station",
	"station":       "station",
	"data":          "timestamp",
	"timestamp":     "timestamp",
	"direcao":       "direction",
	"direction":     "direction",
	"direction_deg": "direction",
	"velocidade":    "speed",
	"speed":         "speed",
	"speed_mps":     "speed",
	"altura":        "height",
	"height":        "height",
	"height_m":      "height",
}

// timestampLayouts are tried in order when parsing the data column.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
}

// ParseFile reads a CSV observation table from disk.
func ParseFile(path string) ([]wind.Observation, wind.DropStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wind.DropStats{}, fmt.Errorf("failed to open observations file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a CSV observation table. The first row must be a header naming
// at least the station, timestamp, direction and speed columns; the height
// column is optional. Rows missing required fields or carrying unparseable
// values are dropped and counted, never fatal. Direction and speed range
// validation is left to wind.Clean.
func Parse(r io.Reader) ([]wind.Observation, wind.DropStats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, wind.DropStats{}, fmt.Errorf("empty observations table")
	}
	if err != nil {
		return nil, wind.DropStats{}, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical, ok := columnAliases[key]; ok {
			cols[canonical] = i
		}
	}
	for _, required := range []string{"station", "timestamp", "direction", "speed"} {
		if _, ok := cols[required]; !ok {
			return nil, wind.DropStats{}, fmt.Errorf("missing required column %q in header %v", required, header)
		}
	}

	var (
		obs   []wind.Observation
		drops wind.DropStats
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV line: skip-and-continue, same policy as a
			// row with missing fields.
			drops.MissingField++
			continue
		}

		o, reason := parseRecord(record, cols)
		switch reason {
		case dropNone:
			obs = append(obs, o)
		case dropMissingField:
			drops.MissingField++
		case dropBadTimestamp:
			drops.BadTimestamp++
		case dropBadDirection:
			drops.InvalidDirection++
		case dropBadSpeed:
			drops.InvalidSpeed++
		}
	}

	if drops.Total() > 0 {
		monitoring.Logf("ingest dropped %d unparseable rows", drops.Total())
	}
	return obs, drops, nil
}

type dropReason int

const (
	dropNone dropReason = iota
	dropMissingField
	dropBadTimestamp
	dropBadDirection
	dropBadSpeed
)

func parseRecord(record []string, cols map[string]int) (wind.Observation, dropReason) {
	field := func(name string) (string, bool) {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	station, ok := field("station")
	if !ok || station == "" {
		return wind.Observation{}, dropMissingField
	}

	tsRaw, ok := field("timestamp")
	if !ok || tsRaw == "" {
		return wind.Observation{}, dropMissingField
	}
	ts, err := parseTimestamp(tsRaw)
	if err != nil {
		return wind.Observation{}, dropBadTimestamp
	}

	dirRaw, ok := field("direction")
	if !ok || dirRaw == "" {
		return wind.Observation{}, dropMissingField
	}
	dir, err := parseFloat(dirRaw)
	if err != nil {
		return wind.Observation{}, dropBadDirection
	}

	speedRaw, ok := field("speed")
	if !ok || speedRaw == "" {
		return wind.Observation{}, dropMissingField
	}
	speed, err := parseFloat(speedRaw)
	if err != nil {
		return wind.Observation{}, dropBadSpeed
	}

	o := wind.Observation{
		Station:      station,
		Timestamp:    ts,
		DirectionDeg: dir,
		SpeedMps:     speed,
	}

	if heightRaw, ok := field("height"); ok && heightRaw != "" {
		if h, err := parseFloat(heightRaw); err == nil && !math.IsNaN(h) {
			o.HeightM = &h
		}
	}

	return o, dropNone
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// parseFloat accepts both dot and comma decimal separators; the source
// loggers emit either depending on locale.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, nil
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		return strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	return 0, err
}
