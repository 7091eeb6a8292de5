package discogs

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

const (
	// DefaultBaseURL is the default Discogs API endpoint.
	DefaultBaseURL = "https://api.discogs.com"

	// DefaultRateLimit is the number of requests per minute Discogs allows
	// authenticated clients. It is advisory; the client does not throttle.
	DefaultRateLimit = 240
)

// Config holds client configuration.
type Config struct {
	UserAgent  string       // Required: identifies the application to Discogs
	Key        string       // Optional: consumer key
	Secret     string       // Optional: consumer secret
	Token      string       // Optional: personal access token (takes precedence over Key/Secret)
	BaseURL    string       // Optional: Base URL for API (defaults to Discogs API, used for testing)
	RateLimit  int          // Optional: advisory requests per minute (defaults to DefaultRateLimit)
	HTTPClient *http.Client // Optional: HTTP client used by the default transport
	Transport  Transport    // Optional: replaces the HTTP transport entirely
	Logger     Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Discogs API operations.
//
// A Client only holds shared configuration. Every factory method returns a
// fresh query that owns a copy of that configuration, so queries can be
// used from multiple goroutines while the client is reconfigured.
type Client struct {
	mu sync.RWMutex

	baseURL   string
	userAgent string
	key       string
	secret    string
	token     string
	rateLimit int

	transport Transport
	logger    Logger
}

// NewClient creates a new Discogs API client.
//
// Returns an error if the required UserAgent is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("discogs: UserAgent is required")
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &HTTPTransport{Client: cfg.HTTPClient}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	rateLimit := cfg.RateLimit
	if rateLimit == 0 {
		rateLimit = DefaultRateLimit
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: cfg.UserAgent,
		key:       cfg.Key,
		secret:    cfg.Secret,
		token:     cfg.Token,
		rateLimit: rateLimit,
		transport: transport,
		logger:    cfg.Logger,
	}, nil
}

// SetKey sets the consumer key.
func (c *Client) SetKey(key string) {
	c.mu.Lock()
	c.key = key
	c.mu.Unlock()
}

// SetSecret sets the consumer secret.
func (c *Client) SetSecret(secret string) {
	c.mu.Lock()
	c.secret = secret
	c.mu.Unlock()
}

// SetToken sets the personal access token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SetBaseURL sets the API endpoint used by queries created afterwards.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

// SetRateLimit sets the advisory requests-per-minute value.
func (c *Client) SetRateLimit(limit int) {
	c.mu.Lock()
	c.rateLimit = limit
	c.mu.Unlock()
}

// BaseURL returns the configured API endpoint.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// UserAgent returns the configured user agent.
func (c *Client) UserAgent() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userAgent
}

// RateLimit returns the advisory requests-per-minute value.
func (c *Client) RateLimit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rateLimit
}

// Credential returns the credential that queries created now would send,
// or nil when none is configured.
func (c *Client) Credential() Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credentialLocked()
}

func (c *Client) credentialLocked() Credential {
	if c.token != "" {
		return TokenAuth{Token: c.token}
	}
	if c.key != "" || c.secret != "" {
		return KeySecretAuth{Key: c.key, Secret: c.secret}
	}
	return nil
}

// queryConfig snapshots the shared configuration for a new query.
func (c *Client) queryConfig() QueryConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return QueryConfig{
		BaseURL:    c.baseURL,
		UserAgent:  c.userAgent,
		Credential: c.credentialLocked(),
		Transport:  c.transport,
		Logger:     c.logger,
	}
}

// Artist returns a query for the artist with the given id.
func (c *Client) Artist(id int) *ArtistQuery {
	return NewArtistQuery(id, c.queryConfig())
}

// Label returns a query for the label with the given id.
func (c *Client) Label(id int) *LabelQuery {
	return NewLabelQuery(id, c.queryConfig())
}

// Release returns a query for the release with the given id.
func (c *Client) Release(id int) *ReleaseQuery {
	return NewReleaseQuery(id, c.queryConfig())
}

// Master returns a query for the master release with the given id.
func (c *Client) Master(id int) *MasterQuery {
	return NewMasterQuery(id, c.queryConfig())
}

// Search returns an empty database search query.
func (c *Client) Search() *SearchQuery {
	return NewSearchQuery(c.queryConfig())
}

// Fetch performs an authenticated GET against an absolute API URL and
// returns the raw response body. It satisfies Fetcher, so it can be passed
// to Refresh.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	q := newQuery(c.queryConfig())
	return q.fetch(ctx, rawURL)
}
