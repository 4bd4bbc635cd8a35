package hydrology

import "time"

// Status labels the provenance of a variable's series.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFallback Status = "fallback"
	StatusError    Status = "error"
)

// SeriesPoint is a single daily observation.
type SeriesPoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Value float64 `json:"value"`
}

// VariableSeriesResult is the resolved series for one variable, tagged with
// its provenance. Built once per request and never mutated afterwards.
type VariableSeriesResult struct {
	Series      []SeriesPoint `json:"series"`
	Source      string        `json:"source"`
	Status      Status        `json:"status"`
	Variable    string        `json:"variable"` // resolved upstream dataset identifier
	Unit        string        `json:"unit"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// BulkEnvelope is the response for a bulk request. Every requested variable
// appears exactly once in Hydrological, regardless of upstream outcome.
type BulkEnvelope struct {
	Hydrological map[Variable]VariableSeriesResult `json:"hydrological"`
	Coordinates  Coordinates                       `json:"coordinates"`
	Timestamp    time.Time                         `json:"timestamp"`
	Source       string                            `json:"source"`
	PlaceName    string                            `json:"placeName,omitempty"`
}
