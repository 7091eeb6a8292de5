package discogs

import (
	"net/url"
	"strings"
	"testing"
)

const testBase = "https://api.example.com"

func testConfig() QueryConfig {
	return QueryConfig{BaseURL: testBase, UserAgent: "crates-test/1.0"}
}

func TestResourceQuery_URL(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "artist", got: NewArtistQuery(4567, cfg).URL(), want: testBase + "/artists/4567"},
		{name: "artist id zero", got: NewArtistQuery(0, cfg).URL(), want: testBase + "/artists/0"},
		{name: "artist releases default paging", got: NewArtistQuery(4567, cfg).Releases().URL(), want: testBase + "/artists/4567/releases?page=1&per_page=50"},
		{name: "artist releases paged", got: NewArtistQuery(4567, cfg).Releases().Pagination(3, 10).URL(), want: testBase + "/artists/4567/releases?page=3&per_page=10"},
		{name: "label", got: NewLabelQuery(1, cfg).URL(), want: testBase + "/labels/1"},
		{name: "label releases", got: NewLabelQuery(1, cfg).Pagination(2, 25).Releases().URL(), want: testBase + "/labels/1/releases?page=2&per_page=25"},
		{name: "release", got: NewReleaseQuery(249504, cfg).URL(), want: testBase + "/releases/249504"},
		{name: "master", got: NewMasterQuery(1000, cfg).URL(), want: testBase + "/masters/1000"},
		{name: "master versions", got: NewMasterQuery(1000, cfg).Versions().URL(), want: testBase + "/masters/1000/versions?page=1&per_page=50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("URL() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestQuery_TrailingSlashBaseURL(t *testing.T) {
	q := NewReleaseQuery(1, QueryConfig{BaseURL: testBase + "/"})
	if got := q.URL(); got != testBase+"/releases/1" {
		t.Errorf("URL() = %q", got)
	}
}

func TestQuery_DefaultBaseURL(t *testing.T) {
	q := NewReleaseQuery(1, QueryConfig{})
	if got := q.URL(); got != DefaultBaseURL+"/releases/1" {
		t.Errorf("URL() = %q", got)
	}
}

func TestResource_String(t *testing.T) {
	for r, want := range map[Resource]string{
		ResourceRelease: "releases",
		ResourceMaster:  "masters",
		ResourceArtist:  "artists",
		ResourceLabel:   "labels",
		ResourceSearch:  "database",
		Resource(99):    "unknown",
	} {
		if got := r.String(); got != want {
			t.Errorf("Resource(%d).String() = %q, want %q", int(r), got, want)
		}
	}
}

func TestSearchQuery_URL(t *testing.T) {
	cfg := testConfig()

	t.Run("empty", func(t *testing.T) {
		if got := NewSearchQuery(cfg).URL(); got != testBase+"/database/search?q=" {
			t.Errorf("URL() = %q", got)
		}
	})

	t.Run("query only", func(t *testing.T) {
		if got := NewSearchQuery(cfg).Query("X").URL(); got != testBase+"/database/search?q=X" {
			t.Errorf("URL() = %q", got)
		}
	})

	t.Run("query and year", func(t *testing.T) {
		got := NewSearchQuery(cfg).Query("X").Year("1980").URL()
		if !strings.HasPrefix(got, testBase+"/database/search?q=X") {
			t.Fatalf("URL() = %q, want q first", got)
		}
		params := parseQuery(t, got)
		if params.Get("q") != "X" || params.Get("year") != "1980" {
			t.Errorf("params = %v", params)
		}
		if strings.HasSuffix(got, "&") || strings.Contains(got, ",") {
			t.Errorf("stray separator in %q", got)
		}
	})

	t.Run("every field", func(t *testing.T) {
		got := NewSearchQuery(cfg).
			Query("nirvana").
			Type(SearchRelease).
			Title("Nirvana - Nevermind").
			ReleaseTitle("Nevermind").
			Credit("kurt").
			Artist("Nirvana").
			ANV("Nirvana (2)").
			Label("DGC").
			Genre("Rock").
			Style("Grunge").
			Country("US").
			Year("1991").
			Format("Vinyl").
			Catno("DGC-24425").
			Barcode("7 2064-24425-2 4").
			Track("Lithium").
			Submitter("milKt").
			Contributor("jerome99").
			URL()

		want := map[string]string{
			"q": "nirvana", "type": "release", "title": "Nirvana - Nevermind",
			"release_title": "Nevermind", "credit": "kurt", "artist": "Nirvana",
			"anv": "Nirvana (2)", "label": "DGC", "genre": "Rock", "style": "Grunge",
			"country": "US", "year": "1991", "format": "Vinyl", "catno": "DGC-24425",
			"barcode": "7 2064-24425-2 4", "track": "Lithium", "submitter": "milKt",
			"contributor": "jerome99",
		}
		params := parseQuery(t, got)
		for k, v := range want {
			if params.Get(k) != v {
				t.Errorf("%s = %q, want %q", k, params.Get(k), v)
			}
		}
		if len(params) != len(want) {
			t.Errorf("got %d params, want %d: %v", len(params), len(want), params)
		}
	})

	t.Run("setting twice replaces", func(t *testing.T) {
		got := NewSearchQuery(cfg).Year("1980").Year("1981").URL()
		params := parseQuery(t, got)
		if vals := params["year"]; len(vals) != 1 || vals[0] != "1981" {
			t.Errorf("year = %v", vals)
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		build := func() string {
			return NewSearchQuery(cfg).Query("a").Genre("Jazz").Country("JP").Format("CD").URL()
		}
		first := build()
		for i := 0; i < 10; i++ {
			if got := build(); got != first {
				t.Fatalf("URL() changed between runs: %q vs %q", got, first)
			}
		}
	})

	t.Run("escaping", func(t *testing.T) {
		got := NewSearchQuery(cfg).Query("a&b c").URL()
		if params := parseQuery(t, got); params.Get("q") != "a&b c" {
			t.Errorf("q = %q from %q", params.Get("q"), got)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		got := NewSearchQuery(cfg).Query("x").Pagination(2, 25).URL()
		params := parseQuery(t, got)
		if params.Get("page") != "2" || params.Get("per_page") != "25" {
			t.Errorf("params = %v", params)
		}
	})
}

func parseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("url.Parse(%q) error = %v", raw, err)
	}
	return u.Query()
}
