package discogs

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies why a query failed.
type ErrorKind int

const (
	// KindJSONDecode means a body was received but did not match the
	// expected schema.
	KindJSONDecode ErrorKind = iota + 1
	// KindTransportSend means the HTTP request itself failed (DNS,
	// connection, TLS, transport timeout).
	KindTransportSend
	// KindHTTPStatus means a response arrived with a status other than 200.
	KindHTTPStatus
	// KindEmptyResponse means the status was 200 but the body was empty.
	KindEmptyResponse
	// KindBodyRead means the response body could not be read in full.
	KindBodyRead
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindJSONDecode:
		return "json decode"
	case KindTransportSend:
		return "transport send"
	case KindHTTPStatus:
		return "http status"
	case KindEmptyResponse:
		return "empty response"
	case KindBodyRead:
		return "body read"
	default:
		return "unknown"
	}
}

// Response is the materialized form of a non-200 HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// QueryError represents a failed query round trip.
//
// Callers branch on Kind, or use errors.Is with the Err* sentinels:
//
//	release, err := client.Release(249504).Get(ctx)
//	if errors.Is(err, discogs.ErrHTTPStatus) {
//	    // inspect err.(*discogs.QueryError).Response
//	}
type QueryError struct {
	Kind     ErrorKind
	URL      string
	Response *Response // set for KindHTTPStatus
	Err      error     // underlying cause; may be nil
}

// Error returns the error message.
func (e *QueryError) Error() string {
	msg := "discogs: " + e.Kind.String()
	if e.Kind == KindHTTPStatus && e.Response != nil {
		msg += fmt.Sprintf(" %d", e.Response.StatusCode)
	}
	if e.URL != "" {
		msg += " for " + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *QueryError of the same Kind.
//
// This allows errors.Is() to work with the Err* sentinels.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// StatusCode returns the HTTP status of a KindHTTPStatus error, or 0.
func (e *QueryError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Sentinels for errors.Is comparisons against QueryError kinds.
var (
	ErrJSONDecode    = &QueryError{Kind: KindJSONDecode}
	ErrTransportSend = &QueryError{Kind: KindTransportSend}
	ErrHTTPStatus    = &QueryError{Kind: KindHTTPStatus}
	ErrEmptyResponse = &QueryError{Kind: KindEmptyResponse}
	ErrBodyRead      = &QueryError{Kind: KindBodyRead}
)

// IsNotFound reports whether err is an HTTP 404 from the API.
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsUnauthorized reports whether err is an HTTP 401 or 403 from the API,
// which usually means missing or bad credentials.
func IsUnauthorized(err error) bool {
	code := statusOf(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func statusOf(err error) int {
	var qerr *QueryError
	if !errors.As(err, &qerr) {
		return 0
	}
	return qerr.StatusCode()
}

// ErrHeaderParse matches any *HeaderError via errors.Is.
var ErrHeaderParse = errors.New("discogs: invalid authorization header")

// HeaderError is returned when an Authorization header value does not match
// the Discogs scheme or its segment format.
type HeaderError struct {
	Header string
	Reason string
}

// Error returns the error message.
func (e *HeaderError) Error() string {
	return fmt.Sprintf("discogs: invalid authorization header %q: %s", e.Header, e.Reason)
}

// Is matches ErrHeaderParse.
func (e *HeaderError) Is(target error) bool {
	return target == ErrHeaderParse
}
