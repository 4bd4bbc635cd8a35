// Package geocode resolves coordinates to human-readable place names for the
// dashboard's location banner. Enrichment is best-effort: lookups that fail
// simply leave the place name empty.
package geocode

import (
	"log"

	"github.com/kelvins/geocoder"
)

// Resolver reverse-geocodes coordinates through the Google Geocoding API.
// A Resolver built without an API key is disabled and returns empty names.
type Resolver struct {
	enabled bool
}

// NewResolver configures the geocoder library with the given API key. The
// library holds the key in package state, so one Resolver per process.
func NewResolver(apiKey string) *Resolver {
	if apiKey == "" {
		return &Resolver{}
	}
	geocoder.ApiKey = apiKey
	return &Resolver{enabled: true}
}

// Enabled reports whether lookups will be attempted.
func (r *Resolver) Enabled() bool {
	return r != nil && r.enabled
}

// PlaceName returns a formatted address for the coordinates, or "" when
// disabled or when the lookup fails.
func (r *Resolver) PlaceName(lat, lng float64) string {
	if !r.Enabled() {
		return ""
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{Latitude: lat, Longitude: lng})
	if err != nil {
		log.Printf("geocode: reverse lookup failed for %.4f,%.4f: %v", lat, lng, err)
		return ""
	}
	if len(addresses) == 0 {
		return ""
	}
	return addresses[0].FormattedAddress
}
