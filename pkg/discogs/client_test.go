package discogs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		UserAgent: "crates-test/1.0",
		BaseURL:   server.URL,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return server, client
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected error without UserAgent")
	}

	client, err := NewClient(Config{UserAgent: "ua"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
	if client.RateLimit() != DefaultRateLimit {
		t.Errorf("RateLimit() = %d", client.RateLimit())
	}
	if client.Credential() != nil {
		t.Errorf("Credential() = %v, want nil", client.Credential())
	}
}

func TestClient_Setters(t *testing.T) {
	client, err := NewClient(Config{UserAgent: "ua"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	client.SetKey("k")
	client.SetSecret("s")
	if got := client.Credential(); got != (KeySecretAuth{Key: "k", Secret: "s"}) {
		t.Errorf("Credential() = %#v", got)
	}

	client.SetToken("t")
	if got := client.Credential(); got != (TokenAuth{Token: "t"}) {
		t.Errorf("token should take precedence, got %#v", got)
	}

	client.SetBaseURL("http://localhost:1/")
	client.SetRateLimit(60)
	if client.BaseURL() != "http://localhost:1" || client.RateLimit() != 60 {
		t.Errorf("BaseURL() = %q, RateLimit() = %d", client.BaseURL(), client.RateLimit())
	}
	if got := client.Release(7).URL(); got != "http://localhost:1/releases/7" {
		t.Errorf("Release(7).URL() = %q", got)
	}
}

func TestClient_QuerySnapshotsConfig(t *testing.T) {
	client, err := NewClient(Config{UserAgent: "ua", BaseURL: "http://one"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	q := client.Artist(1)
	client.SetBaseURL("http://two")
	if got := q.URL(); got != "http://one/artists/1" {
		t.Errorf("existing query saw new base URL: %q", got)
	}
}

func TestArtistQuery_Get(t *testing.T) {
	var sawUA, sawAuth, sawPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET request, got %s", r.Method)
		}
		sawUA = r.Header.Get("User-Agent")
		sawAuth = r.Header.Get("Authorization")
		sawPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, `{"id":4567,"resource_url":"https://api.example.com/artists/4567","name":"Example Artist"}`)
	})
	client.SetToken("tok")

	artist, err := client.Artist(4567).Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	want := Artist{ID: 4567, Name: "Example Artist", ResourceURL: "https://api.example.com/artists/4567"}
	if artist.ID != want.ID || artist.Name != want.Name || artist.ResourceURL != want.ResourceURL {
		t.Errorf("Get() = %+v, want %+v", artist, want)
	}
	if sawPath != "/artists/4567" {
		t.Errorf("path = %q", sawPath)
	}
	if sawUA != "crates-test/1.0" {
		t.Errorf("User-Agent = %q", sawUA)
	}
	if sawAuth != "Discogs token=tok" {
		t.Errorf("Authorization = %q", sawAuth)
	}
}

func TestQuery_NoCredentialNoHeader(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		_, _ = io.WriteString(w, `{"id":1,"title":"T","resource_url":"u"}`)
	})

	if _, err := client.Release(1).Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestQuery_Errors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantKind   ErrorKind
		wantStatus int
	}{
		{name: "not found", statusCode: http.StatusNotFound, body: `{"message": "Artist not found."}`, wantKind: KindHTTPStatus, wantStatus: 404},
		{name: "not found with garbage body", statusCode: http.StatusNotFound, body: `<html>`, wantKind: KindHTTPStatus, wantStatus: 404},
		{name: "server error", statusCode: http.StatusInternalServerError, body: ``, wantKind: KindHTTPStatus, wantStatus: 500},
		{name: "empty body", statusCode: http.StatusOK, body: ``, wantKind: KindEmptyResponse},
		{name: "invalid json", statusCode: http.StatusOK, body: `{"id":`, wantKind: KindJSONDecode},
		{name: "null document", statusCode: http.StatusOK, body: `null`, wantKind: KindJSONDecode},
		{name: "missing field", statusCode: http.StatusOK, body: `{"id":1}`, wantKind: KindJSONDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = io.WriteString(w, tt.body)
			})

			artist, err := client.Artist(4567).Get(context.Background())
			if err == nil {
				t.Fatalf("expected error, got %+v", artist)
			}
			if artist != nil {
				t.Errorf("expected nil artist, got %+v", artist)
			}

			var qerr *QueryError
			if !errors.As(err, &qerr) {
				t.Fatalf("expected *QueryError, got %T: %v", err, err)
			}
			if qerr.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", qerr.Kind, tt.wantKind)
			}
			if !strings.HasSuffix(qerr.URL, "/artists/4567") {
				t.Errorf("URL = %q", qerr.URL)
			}
			if qerr.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", qerr.StatusCode(), tt.wantStatus)
			}
			if tt.wantKind == KindHTTPStatus && string(qerr.Response.Body) != tt.body {
				t.Errorf("Response.Body = %q, want %q", qerr.Response.Body, tt.body)
			}
		})
	}
}

func TestQuery_NotFoundHelpers(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Label(1).Get(context.Background())
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false", err)
	}
	if IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = true", err)
	}
	if !errors.Is(err, ErrHTTPStatus) {
		t.Errorf("errors.Is(%v, ErrHTTPStatus) = false", err)
	}
	if errors.Is(err, ErrJSONDecode) {
		t.Errorf("errors.Is(%v, ErrJSONDecode) = true", err)
	}
}

func TestQuery_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	transport := TransportFunc(func(ctx context.Context, url string, header http.Header) (*http.Response, error) {
		return nil, cause
	})
	client, err := NewClient(Config{UserAgent: "ua", Transport: transport})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Master(1).Get(context.Background())
	if !errors.Is(err, ErrTransportSend) {
		t.Fatalf("expected ErrTransportSend, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("reset by peer") }

func TestQuery_BodyReadError(t *testing.T) {
	transport := TransportFunc(func(ctx context.Context, url string, header http.Header) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Body:       io.NopCloser(failingReader{}),
		}, nil
	})
	client, err := NewClient(Config{UserAgent: "ua", Transport: transport})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Release(1).Get(context.Background())
	if !errors.Is(err, ErrBodyRead) {
		t.Fatalf("expected ErrBodyRead, got %v", err)
	}
}

func TestQuery_ContextCanceled(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Release(1).Get(ctx)
	if !errors.Is(err, ErrTransportSend) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected canceled transport error, got %v", err)
	}
}

func TestArtistQuery_GetReleases(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/artists/1/releases" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("page") != "2" || r.URL.Query().Get("per_page") != "5" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"pagination":{"page":2,"per_page":5,"items":6,"pages":2,"urls":{"first":"f","prev":"p"}},
			"releases":[{"id":9,"title":"T","resource_url":"https://api.discogs.com/releases/9","type":"release"}]}`)
	})

	listing, err := client.Artist(1).Pagination(2, 5).GetReleases(context.Background())
	if err != nil {
		t.Fatalf("GetReleases() error = %v", err)
	}
	if listing.Pagination.HasNext() || len(listing.Releases) != 1 || listing.Releases[0].ID != 9 {
		t.Errorf("GetReleases() = %+v", listing)
	}
}

func TestMasterQuery_GetVersions(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/masters/1000/versions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"pagination":{"page":1,"per_page":50,"items":1,"pages":1,"urls":{}},
			"versions":[{"id":1,"title":"Stardiver","resource_url":"https://api.discogs.com/releases/1","major_formats":["Vinyl"]}]}`)
	})

	listing, err := client.Master(1000).GetVersions(context.Background())
	if err != nil {
		t.Fatalf("GetVersions() error = %v", err)
	}
	if len(listing.Versions) != 1 || listing.Versions[0].MajorFormats[0] != "Vinyl" {
		t.Errorf("GetVersions() = %+v", listing)
	}
}

func TestSearchQuery_Get(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/database/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if q := r.URL.Query(); q.Get("q") != "nirvana" || q.Get("type") != "master" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
		_, _ = io.WriteString(w, `{"pagination":{"page":1,"per_page":50,"items":1,"pages":1,"urls":{}},
			"results":[{"id":13814,"type":"master","title":"Nirvana - Nevermind","year":"1991","resource_url":"https://api.discogs.com/masters/13814","community":{"have":1,"want":2}}]}`)
	})
	client.SetKey("k")
	client.SetSecret("s")

	results, err := client.Search().Query("nirvana").Type(SearchMaster).Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(results.Results) != 1 || results.Results[0].Year != "1991" || results.Results[0].Community.Want != 2 {
		t.Errorf("Get() = %+v", results)
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func TestQuery_Logger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":1,"title":"T","resource_url":"u"}`)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	client, err := NewClient(Config{UserAgent: "ua", BaseURL: server.URL, Logger: logger})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Release(1).Get(context.Background()); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(logger.lines) == 0 || !strings.Contains(logger.lines[0], "/releases/1") {
		t.Errorf("log lines = %v", logger.lines)
	}
}

func TestClient_ConcurrentQueries(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":1,"title":"T","resource_url":"u"}`)
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client.SetRateLimit(i)
			if _, err := client.Release(i).Get(context.Background()); err != nil {
				t.Errorf("Get() error = %v", err)
			}
		}(i)
	}
	wg.Wait()
}
