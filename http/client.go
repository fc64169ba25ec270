// Package http provides HTTP client infrastructure for YouTube Data API calls:
// request timeouts, connection pooling, credential injection and request pacing.
package http

import (
	"net/http"
	"time"
)

// Client wraps an HTTP client configured for the YouTube Data API.
type Client struct {
	base   *http.Client
	config *Config
}

// Config holds HTTP client configuration.
type Config struct {
	// Timeout for individual HTTP requests
	Timeout time.Duration

	// APIKey is appended to every request as the "key" query parameter.
	// Empty means requests are sent unauthenticated.
	APIKey string

	// User agent for HTTP requests
	UserAgent string

	// Connection pool configuration
	Transport TransportConfig
}

// TransportConfig configures the HTTP transport (connection pooling).
type TransportConfig struct {
	// MaxIdleConns is the maximum number of idle connections across all hosts.
	// Default: 10
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host.
	// Default: 2
	MaxIdleConnsPerHost int

	// IdleConnTimeout is the maximum amount of time an idle connection can remain open.
	// Default: 90 seconds
	IdleConnTimeout time.Duration

	// ForceAttemptHTTP2 forces HTTP/2 for connections to servers that don't explicitly support it.
	// Default: true
	ForceAttemptHTTP2 bool
}

// DefaultConfig returns sensible defaults for HTTP client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:   30 * time.Second,
		UserAgent: "ytexport/1.0",
		Transport: DefaultTransportConfig(),
	}
}

// DefaultTransportConfig returns defaults sized for a single sequential caller.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}
}

// New creates a new HTTP client with the given configuration.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        cfg.Transport.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Transport.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Transport.IdleConnTimeout,
		ForceAttemptHTTP2:   cfg.Transport.ForceAttemptHTTP2,
	}

	base := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &apiTransport{
			base:      transport,
			apiKey:    cfg.APIKey,
			userAgent: cfg.UserAgent,
		},
	}

	return &Client{
		base:   base,
		config: cfg,
	}
}

// HTTPClient returns the underlying *http.Client, suitable for
// option.WithHTTPClient when constructing Google API services.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}

// Close closes the HTTP client connections and releases all resources.
func (c *Client) Close() error {
	if c.base != nil {
		c.base.CloseIdleConnections()
	}
	return nil
}

// GetTransportConfig returns the transport configuration being used.
func (c *Client) GetTransportConfig() TransportConfig {
	return c.config.Transport
}

// apiTransport adds the API key and user agent to outgoing requests.
type apiTransport struct {
	base      http.RoundTripper
	apiKey    string
	userAgent string
}

// RoundTrip implements http.RoundTripper. The request is cloned, never mutated.
func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if t.apiKey != "" {
		q := r.URL.Query()
		q.Set("key", t.apiKey)
		r.URL.RawQuery = q.Encode()
	}

	// Don't override explicitly set user agents
	if t.userAgent != "" && r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", t.userAgent)
	}

	return t.base.RoundTrip(r)
}
