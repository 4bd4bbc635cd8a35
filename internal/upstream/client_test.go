package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL, username, password string) *Client {
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		Username:   username,
		Password:   password,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
	})
}

func TestFetchSeriesBuildsRequest(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(r.Context())
		w.Write([]byte(`{"data": []}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", "")
	payload, err := client.FetchSeries(context.Background(),
		"GPM_3IMERGDF_06_precipitation", 37.7749, -122.4194, "2025-09-30", "2025-10-06")

	require.NoError(t, err)
	assert.Equal(t, `{"data": []}`, payload)

	require.NotNil(t, captured)
	q := captured.URL.Query()
	assert.Equal(t, "GPM_3IMERGDF_06_precipitation", q.Get("variable"))
	assert.Equal(t, "37.7749", q.Get("latitude"))
	assert.Equal(t, "-122.4194", q.Get("longitude"))
	assert.Equal(t, "2025-09-30", q.Get("startDate"))
	assert.Equal(t, "2025-10-06", q.Get("endDate"))
	assert.Equal(t, "asc", q.Get("type"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Empty(t, captured.Header.Get("Authorization"),
		"no auth header without configured credentials")
}

func TestFetchSeriesBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "earthdata-user", user)
		assert.Equal(t, "hunter2", pass)
		w.Write([]byte("ok")) //nolint:errcheck
	}))
	defer server.Close()

	client := newTestClient(server.URL, "earthdata-user", "hunter2")
	_, err := client.FetchSeries(context.Background(), "x", 0, 0, "2025-01-01", "2025-01-02")

	require.NoError(t, err)
}

func TestFetchSeriesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "", "")
	_, err := client.FetchSeries(context.Background(), "x", 0, 0, "2025-01-01", "2025-01-02")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchSeriesAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "wrong", "creds")
	_, err := client.FetchSeries(context.Background(), "x", 0, 0, "2025-01-01", "2025-01-02")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestFetchSeriesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client := newTestClient(server.URL, "", "")
	_, err := client.FetchSeries(context.Background(), "x", 0, 0, "2025-01-01", "2025-01-02")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetchSeriesRetries(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("2025-01-01,1.0")) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
		MaxRetries: 3,
	})
	client.httpCfg.Backoff.InitialInterval = time.Millisecond

	payload, err := client.FetchSeries(context.Background(), "x", 0, 0, "2025-01-01", "2025-01-02")

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "2025-01-01,1.0", payload)
}
