// Package links builds URLs into external NASA and CPTEC visualization
// services. Pure string construction, no I/O.
package links

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const dateFormat = "2006-01-02"

// Defaults applied when the caller omits the optional query parameters.
const (
	DefaultGiovanniVariable = "GPM_3IMERGM_06_precipitation"
	DefaultGiovanniDays     = 30
	DefaultWorldviewLayers  = "MODIS_Terra_CorrectedReflectance_TrueColor"
	DefaultSearchKeywords   = "precipitation,temperature"
)

// Config holds the base URLs of the external services.
type Config struct {
	GiovanniBaseURL  string
	WorldviewBaseURL string
	EarthdataBaseURL string
	CptecBaseURL     string
}

// Giovanni returns an area-averaged time-series plot URL for the variable
// over the trailing day window ending at now.
func (c Config) Giovanni(lat, lng float64, variable string, days int, now time.Time) string {
	if variable == "" {
		variable = DefaultGiovanniVariable
	}
	if days <= 0 {
		days = DefaultGiovanniDays
	}
	start := now.AddDate(0, 0, -days)

	params := url.Values{}
	params.Set("service", "ArAvTs")
	params.Set("starttime", start.Format(dateFormat))
	params.Set("endtime", now.Format(dateFormat))
	params.Set("bbox", fmt.Sprintf("%g,%g,%g,%g", lng-0.1, lat-0.1, lng+0.1, lat+0.1))
	params.Set("data", variable)
	params.Set("variableFacets", "dataFieldMeasurement%3APrecipitation%3B")
	params.Set("portal", "GIOVANNI")

	return c.GiovanniBaseURL + "/#" + params.Encode()
}

// Worldview returns a satellite imagery URL centered on the location.
func (c Config) Worldview(lat, lng float64, layers string, now time.Time) string {
	if layers == "" {
		layers = DefaultWorldviewLayers
	}
	return fmt.Sprintf("%s/?v=%g,%g,%g,%g&t=%s&l=%s",
		c.WorldviewBaseURL, lng-2, lat-2, lng+2, lat+2, now.Format(dateFormat), layers)
}

// EarthdataSearch returns a dataset search URL scoped to a bounding box
// around the location.
func (c Config) EarthdataSearch(lat, lng float64, keywords string) string {
	if keywords == "" {
		keywords = DefaultSearchKeywords
	}
	bbox := fmt.Sprintf("%g,%g,%g,%g", lng-1, lat-1, lng+1, lat+1)
	return fmt.Sprintf("%s/search?sb=%s&q=%s", c.EarthdataBaseURL, bbox, url.QueryEscape(keywords))
}

// CptecLinks bundles the CPTEC satellite/radar product URLs for a location.
type CptecLinks struct {
	ForecastURL  string `json:"forecastUrl"`
	RadarURL     string `json:"radarUrl"`
	SatelliteURL string `json:"satelliteUrl"`
	Available    bool   `json:"available"`
}

// Cptec returns CPTEC product URLs. Available is false outside the South
// America coverage area.
func (c Config) Cptec(lat, lng float64, now time.Time) CptecLinks {
	day := strings.ReplaceAll(now.Format(dateFormat), "-", "")
	return CptecLinks{
		ForecastURL:  fmt.Sprintf("%s/goes16/produtos/tempo/goes16_ret_ch13_ams_%s.jpg", c.CptecBaseURL, day),
		RadarURL:     fmt.Sprintf("%s/radar/radar_ppi_ams.gif", c.CptecBaseURL),
		SatelliteURL: fmt.Sprintf("%s/goes16/produtos/tempo/goes16_ret_ch13_ams.gif", c.CptecBaseURL),
		Available:    InSouthAmerica(lat, lng),
	}
}

// InSouthAmerica reports whether the coordinates fall inside the CPTEC
// coverage area.
func InSouthAmerica(lat, lng float64) bool {
	return lat >= -60 && lat <= 15 && lng >= -85 && lng <= -30
}
