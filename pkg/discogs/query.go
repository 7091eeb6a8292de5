package discogs

import (
	"fmt"
	"strings"
)

// QueryConfig is the shared configuration a query is built from. Client
// fills it in; it can also be built by hand to create queries without a
// Client.
type QueryConfig struct {
	BaseURL    string
	UserAgent  string
	Credential Credential // nil sends no Authorization header
	Transport  Transport  // nil uses HTTPTransport with http.DefaultClient
	Logger     Logger
}

// query holds the per-call copy of the shared configuration.
type query struct {
	baseURL    string
	userAgent  string
	credential Credential
	transport  Transport
	logger     Logger
}

func newQuery(cfg QueryConfig) query {
	transport := cfg.Transport
	if transport == nil {
		transport = &HTTPTransport{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return query{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  cfg.UserAgent,
		credential: cfg.Credential,
		transport:  transport,
		logger:     cfg.Logger,
	}
}

// resourceURL returns {base}/{resource}/{id}.
func (q *query) resourceURL(r Resource, id int) string {
	return fmt.Sprintf("%s/%s/%d", q.baseURL, r, id)
}

// pagedURL returns {base}/{resource}/{id}/{sub}?page={page}&per_page={perPage}.
func (q *query) pagedURL(r Resource, id int, sub string, page, perPage int) string {
	return fmt.Sprintf("%s/%s/%d/%s?page=%d&per_page=%d", q.baseURL, r, id, sub, page, perPage)
}

// logDebugf logs a debug message if a logger is configured.
func (q *query) logDebugf(format string, args ...interface{}) {
	if q.logger != nil {
		q.logger.Debugf(format, args...)
	}
}
