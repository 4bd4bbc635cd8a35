package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig is the immutable process-wide configuration, built once at
// startup and passed by injection. No ambient globals.
type AppConfig struct {
	Port        string
	CORSOrigins string // comma-separated list for the CORS middleware

	// Upstream endpoints.
	GesDiscBaseURL   string
	GiovanniBaseURL  string
	WorldviewBaseURL string
	EarthdataBaseURL string
	CptecBaseURL     string

	// Earthdata credentials; empty means anonymous access.
	NasaUsername string
	NasaPassword string

	// UseRealData false serves synthetic data without contacting upstream.
	UseRealData bool

	// Outbound HTTP behaviour.
	HTTPTimeout time.Duration
	MaxRetries  int

	// Reachability monitor.
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration

	// Upstream payload cache.
	CacheMaxEntries int
	CacheTTL        time.Duration

	// Optional Google geocoding key for place-name enrichment.
	GeocoderAPIKey string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:        getenvDefault("PORT", "3001"),
		CORSOrigins: getenvDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174,http://localhost:3000"),

		GesDiscBaseURL:   getenvDefault("GESDISC_BASE_URL", "https://hydro1.gesdisc.eosdis.nasa.gov/daac-bin/access/timeseries.cgi"),
		GiovanniBaseURL:  getenvDefault("GIOVANNI_BASE_URL", "https://giovanni.gsfc.nasa.gov/giovanni"),
		WorldviewBaseURL: getenvDefault("WORLDVIEW_BASE_URL", "https://worldview.earthdata.nasa.gov"),
		EarthdataBaseURL: getenvDefault("EARTHDATA_SEARCH_URL", "https://search.earthdata.nasa.gov"),
		CptecBaseURL:     getenvDefault("CPTEC_BASE_URL", "https://satellite.cptec.inpe.br/repositorio"),

		NasaUsername: os.Getenv("NASA_USERNAME"),
		NasaPassword: os.Getenv("NASA_PASSWORD"),

		UseRealData: getenvBool("USE_REAL_NASA_DATA", true),

		MaxRetries:      getenvInt("UPSTREAM_MAX_RETRIES", 0),
		CacheMaxEntries: getenvInt("CACHE_MAX_ENTRIES", 256),

		GeocoderAPIKey: os.Getenv("GEOCODER_API_KEY"),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("HEALTH_PROBE_INTERVAL", "1m"); err != nil {
		return nil, err
	}
	if cfg.ProbeTimeout, err = getenvDuration("HEALTH_PROBE_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}

	if cfg.GesDiscBaseURL == "" {
		return nil, fmt.Errorf("GESDISC_BASE_URL must not be empty")
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("UPSTREAM_MAX_RETRIES must not be negative")
	}
	if cfg.ProbeTimeout <= 0 {
		return nil, fmt.Errorf("HEALTH_PROBE_TIMEOUT must be positive")
	}
	if (cfg.NasaUsername == "") != (cfg.NasaPassword == "") {
		return nil, fmt.Errorf("NASA_USERNAME and NASA_PASSWORD must be set together")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
