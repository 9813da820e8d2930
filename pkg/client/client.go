package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the INPE STAC API root serving search and item lookups.
	DefaultBaseURL = "https://www.dgi.inpe.br/lgi-stac"
	// DefaultCatalogURL lists the collections known to the INPE catalog.
	DefaultCatalogURL = "https://www.dgi.inpe.br/stac-compose/collections"
)

// Middleware manipulates an outgoing *http.Request before it is executed.
// The context is provided for cancellation and to support middleware that
// blocks, such as rate limiting.
type Middleware func(context.Context, *http.Request) error

// ClientOption configures the Client.
type ClientOption func(*Client)

// Client talks to the catalog search, item and collection metadata endpoints.
// A Client holds no per-request state and is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	catalogRaw string
	catalogURL *url.URL
	httpClient *http.Client
	middleware []Middleware
	logger     zerolog.Logger
}

// -----------------------------------------------------------------------------
// Client options
// -----------------------------------------------------------------------------

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if c.httpClient != nil {
			c.httpClient.Timeout = d
		}
	}
}

// WithMiddleware registers one or more request-middleware functions.
func WithMiddleware(mw ...Middleware) ClientOption {
	return func(c *Client) { c.middleware = append(c.middleware, mw...) }
}

// WithCatalogURL overrides the collection metadata endpoint.
func WithCatalogURL(raw string) ClientOption {
	return func(c *Client) { c.catalogRaw = raw }
}

// WithLogger sets the logger used for request lifecycle events.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new catalog client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	if u.Path != "" && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if u.RawPath != "" && !strings.HasSuffix(u.RawPath, "/") {
		u.RawPath += "/"
	}

	c := &Client{
		baseURL:    u,
		catalogRaw: DefaultCatalogURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient == nil {
		return nil, fmt.Errorf("http client cannot be nil")
	}

	catalog, err := url.Parse(c.catalogRaw)
	if err != nil {
		return nil, err
	}
	if !catalog.IsAbs() {
		return nil, fmt.Errorf("catalog URL %q must be absolute", c.catalogRaw)
	}
	c.catalogURL = catalog
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// CatalogURL returns the collection metadata endpoint.
func (c *Client) CatalogURL() string { return c.catalogURL.String() }

// -----------------------------------------------------------------------------
// doRequest: one place to build a request, run middleware, and execute it.
// -----------------------------------------------------------------------------
//
// Every endpoint funnels its outbound HTTP calls through this helper. Network
// failures come back wrapped in ErrTransport; status handling is left to the
// caller.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Apply all registered middleware in order.
	for _, mw := range c.middleware {
		if err := mw(ctx, req); err != nil {
			return nil, fmt.Errorf("error applying middleware for %s: %w", rawURL, err)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).
			Str("method", method).
			Str("url", rawURL).
			Str("request_id", req.Header.Get(requestIDHeader)).
			Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, rawURL, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", rawURL).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", req.Header.Get(requestIDHeader)).
		Msg("request completed")
	return resp, nil
}
