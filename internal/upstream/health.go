package upstream

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Gate probes upstream reachability with a hard timeout. The result is
// advisory: callers that skip the gate must still cope with fetch failures.
type Gate struct {
	healthURL string
	client    *http.Client
}

// NewGate creates a reachability probe against the given URL.
func NewGate(healthURL string, client *http.Client) *Gate {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gate{healthURL: healthURL, client: client}
}

// Probe reports whether the upstream answers with a 2xx within timeout. The
// in-flight request is cancelled when the timeout elapses.
func (g *Gate) Probe(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.healthURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
