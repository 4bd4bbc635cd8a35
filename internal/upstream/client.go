package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
)

const userAgent = "nasa-data-proxy/1.0"

// ClientConfig holds the settings for the GES DISC Data Rods client.
type ClientConfig struct {
	BaseURL string

	// Earthdata credentials. Both empty means anonymous access; the upstream
	// may still answer with reduced quota.
	Username string
	Password string

	HTTPClient *http.Client

	// MaxRetries beyond the first attempt. Zero keeps the single-attempt
	// policy.
	MaxRetries int
}

// Client fetches point time series from the GES DISC Data Rods endpoint.
// It builds the request and returns the raw payload text; interpreting the
// payload shape is the normalizer's job.
type Client struct {
	baseURL  string
	username string
	password string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// NewClient creates a Data Rods client with a circuit breaker so a known-down
// upstream fails fast instead of fanning out N doomed requests.
func NewClient(cfg ClientConfig) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gesdisc",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		httpCfg: HTTPClientConfig{
			Client: cfg.HTTPClient,
			Backoff: BackoffConfig{
				MaxRetries:      cfg.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: cb,
	}
}

// FetchSeries retrieves the raw time-series payload for one dataset at a
// point location. Dates are YYYY-MM-DD bounds, inclusive, requested in
// ascending order.
func (c *Client) FetchSeries(ctx context.Context, dataset string, lat, lng float64, startDate, endDate string) (string, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("variable", dataset)
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
		values.Set("startDate", startDate)
		values.Set("endDate", endDate)
		values.Set("type", "asc")
		values.Set("format", "json")

		req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json, text/plain, */*")
		if c.username != "" && c.password != "" {
			req.SetBasicAuth(c.username, c.password)
		}
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	return string(body), nil
}
