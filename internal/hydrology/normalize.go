package hydrology

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/earthlens/nasa-data-proxy/internal/common"
)

// Normalize parses a raw upstream payload into the uniform series contract.
// Two shapes are recognized: Data Rods style JSON ({"data": [{date_time,
// value}]} or a bare array of {date, value} records) and newline-delimited
// text with comment/header rows. Normalization never fails; payloads matching
// neither shape degrade to an empty series.
func Normalize(raw []byte) []SeriesPoint {
	if points, ok := normalizeJSON(raw); ok {
		return points
	}
	return normalizeText(string(raw))
}

// record covers both upstream JSON schemas: Data Rods uses date_time, the
// generic shape uses date. Value may arrive as a number, a numeric string,
// the literal "NA", or null.
type record struct {
	DateTime string          `json:"date_time"`
	Date     string          `json:"date"`
	Value    json.RawMessage `json:"value"`
}

func normalizeJSON(raw []byte) ([]SeriesPoint, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false
	}

	switch trimmed[0] {
	case '{':
		var payload struct {
			Data []record `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return jsonMismatch(trimmed)
		}
		return recordsToPoints(payload.Data), true
	case '[':
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return jsonMismatch(trimmed)
		}
		return recordsToPoints(records), true
	default:
		return nil, false
	}
}

// jsonMismatch decides what to do with input that looked like JSON but did
// not unmarshal into a known shape: valid JSON of the wrong shape degrades to
// an empty series, while invalid input falls through to the text parser.
func jsonMismatch(trimmed []byte) ([]SeriesPoint, bool) {
	if json.Valid(trimmed) {
		return []SeriesPoint{}, true
	}
	return nil, false
}

func recordsToPoints(records []record) []SeriesPoint {
	points := []SeriesPoint{}
	for _, rec := range records {
		value, ok := coerceValue(rec.Value)
		if !ok {
			continue
		}
		date := rec.DateTime
		if date == "" {
			date = rec.Date
		}
		points = append(points, SeriesPoint{Date: date, Value: value})
	}
	return points
}

// coerceValue extracts a float from a JSON value field. Null and the literal
// string "NA" mark missing observations and are dropped.
func coerceValue(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" || s == "NA" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// normalizeText parses the comma-delimited text format Data Rods answers with
// when JSON is not available. Rows starting with '#' or the token "Date" and
// rows without a comma are skipped; rows whose value field does not parse to a
// finite float are dropped. Values are rounded to 3 decimal places.
func normalizeText(text string) []SeriesPoint {
	points := []SeriesPoint{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "Date") || !strings.Contains(line, ",") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || math.IsNaN(value) {
			continue
		}
		points = append(points, SeriesPoint{
			Date:  strings.TrimSpace(parts[0]),
			Value: common.Round3(value),
		})
	}
	return points
}
