package discogs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Transport performs the HTTP GET requests issued by queries.
//
// Implementations only need to send the request; status handling, body
// reading and decoding are done by the caller. The returned response body
// is always closed by the caller.
type Transport interface {
	Get(ctx context.Context, url string, header http.Header) (*http.Response, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, url string, header http.Header) (*http.Response, error)

// Get calls f(ctx, url, header).
func (f TransportFunc) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	return f(ctx, url, header)
}

// HTTPTransport is the default Transport backed by an *http.Client.
type HTTPTransport struct {
	Client *http.Client // defaults to http.DefaultClient
}

// Get sends a GET request with the given headers.
func (t *HTTPTransport) Get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, values := range header {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	return client.Do(req)
}

// Fetcher retrieves the raw JSON document stored at an API URL.
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// fetch issues a GET for url and returns the full body of a successful
// response.
//
// It handles:
// - Request headers (User-Agent, Accept, Authorization)
// - Transport failures
// - Non-200 status codes (the body is kept on the error, never decoded)
// - Body read failures and empty bodies
func (q *query) fetch(ctx context.Context, url string) ([]byte, error) {
	header := make(http.Header)
	header.Set("User-Agent", q.userAgent)
	header.Set("Accept", "application/json")
	if q.credential != nil {
		header.Set("Authorization", AuthorizationHeader(q.credential))
	}

	q.logDebugf("discogs: GET %s", url)

	resp, err := q.transport.Get(ctx, url, header)
	if err != nil {
		return nil, &QueryError{Kind: KindTransportSend, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Best effort: the body is informational only.
		body, _ := io.ReadAll(resp.Body)
		q.logDebugf("discogs: %s returned %d", url, resp.StatusCode)
		return nil, &QueryError{
			Kind: KindHTTPStatus,
			URL:  url,
			Response: &Response{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Header:     resp.Header,
				Body:       body,
			},
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &QueryError{Kind: KindBodyRead, URL: url, Err: err}
	}
	if len(body) == 0 {
		return nil, &QueryError{Kind: KindEmptyResponse, URL: url}
	}

	q.logDebugf("discogs: %s succeeded (%d bytes)", url, len(body))
	return body, nil
}

// get fetches url and decodes the body into a new T.
func get[T any](ctx context.Context, q *query, url string) (*T, error) {
	body, err := q.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	v, qerr := decode[T](body)
	if qerr != nil {
		qerr.URL = url
		return nil, qerr
	}
	return v, nil
}

// decode unmarshals a JSON document into a new T.
//
// A document that is JSON null is rejected without an underlying parser
// error; everything else is left to encoding/json and the UnmarshalJSON
// methods of the schema types.
func decode[T any](body []byte) (*T, *QueryError) {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, &QueryError{Kind: KindJSONDecode}
	}
	v := new(T)
	if err := json.Unmarshal(body, v); err != nil {
		return nil, &QueryError{Kind: KindJSONDecode, Err: err}
	}
	return v, nil
}

// refresh re-fetches url with f and replaces *dst with the decoded result.
// *dst is left untouched on any error.
func refresh[T any](ctx context.Context, f Fetcher, url string, dst *T) error {
	if url == "" {
		return fmt.Errorf("discogs: cannot refresh a record without resource_url")
	}
	body, err := f(ctx, url)
	if err != nil {
		return err
	}
	v, qerr := decode[T](body)
	if qerr != nil {
		qerr.URL = url
		return qerr
	}
	*dst = *v
	return nil
}
