package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewClient(t *testing.T) {
	t.Run("adds trailing slash to base path", func(t *testing.T) {
		c, err := NewClient("https://www.dgi.inpe.br/lgi-stac")
		require.NoError(t, err)
		assert.Equal(t, "https://www.dgi.inpe.br/lgi-stac/", c.BaseURL())
		assert.Equal(t, DefaultCatalogURL, c.CatalogURL())
	})

	t.Run("rejects relative base", func(t *testing.T) {
		_, err := NewClient("lgi-stac/search")
		assert.Error(t, err)
	})

	t.Run("rejects relative catalog", func(t *testing.T) {
		_, err := NewClient(DefaultBaseURL, WithCatalogURL("/collections"))
		assert.Error(t, err)
	})

	t.Run("rejects nil http client", func(t *testing.T) {
		_, err := NewClient(DefaultBaseURL, WithHTTPClient(nil), WithTimeout(time.Second))
		assert.Error(t, err)
	})

	t.Run("applies timeout", func(t *testing.T) {
		hc := &http.Client{}
		_, err := NewClient(DefaultBaseURL, WithHTTPClient(hc), WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, hc.Timeout)
	})
}

func TestClient_Middleware(t *testing.T) {
	var (
		userAgent string
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		requestID = r.Header.Get("X-Request-ID")
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer server.Close()

	cli, err := NewClient(server.URL, WithMiddleware(
		UserAgent("cbers4asat-test"),
		RequestID(),
		RateLimit(rate.NewLimiter(rate.Inf, 1)),
	))
	require.NoError(t, err)

	_, err = cli.SearchByArea(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "cbers4asat-test", userAgent)
	assert.Len(t, requestID, 36)
}

func TestClient_MiddlewareErrorStopsRequest(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	boom := errors.New("boom")
	cli, err := NewClient(server.URL, WithMiddleware(func(context.Context, *http.Request) error { return boom }))
	require.NoError(t, err)

	_, err = cli.SearchByArea(context.Background(), testRequest())
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, hits)
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	cli, err := NewClient("http://127.0.0.1:1", WithMiddleware(RateLimit(limiter)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = cli.SearchByArea(ctx, testRequest())
	assert.Error(t, err)
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	cli, err := NewClient(url, WithTimeout(2*time.Second))
	require.NoError(t, err)

	fc, err := cli.SearchByArea(context.Background(), testRequest())
	assert.Nil(t, fc)
	assert.ErrorIs(t, err, ErrTransport)

	item, err := cli.FetchByID(context.Background(), "CBERS4A_WPM_L2_DN", "CBERS4A_WPM22912420250110")
	assert.Nil(t, item)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrNotFound)
}
