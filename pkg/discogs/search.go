package discogs

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// searchParams is an insertion-ordered parameter set. Setting a key that is
// already present replaces its value in place.
type searchParams struct {
	keys   []string
	values map[string]string
}

func (p *searchParams) set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// SearchQuery builds requests for /database/search.
//
// All setters are chainable. The free-text query is always emitted first as
// q; the remaining parameters follow in the order they were first set.
type SearchQuery struct {
	query
	q       string
	params  searchParams
	paged   bool
	page    int
	perPage int
}

// NewSearchQuery creates an empty search. An empty search is a legal
// request and yields {base}/database/search?q=.
func NewSearchQuery(cfg QueryConfig) *SearchQuery {
	return &SearchQuery{
		query:   newQuery(cfg),
		page:    DefaultPage,
		perPage: DefaultPerPage,
	}
}

// Query sets the free-text search.
func (q *SearchQuery) Query(s string) *SearchQuery {
	q.q = s
	return q
}

// Type restricts results to one kind of resource.
func (q *SearchQuery) Type(t SearchType) *SearchQuery { return q.set("type", string(t)) }

// Title searches by "Artist - Title".
func (q *SearchQuery) Title(s string) *SearchQuery { return q.set("title", s) }

// ReleaseTitle searches by release title.
func (q *SearchQuery) ReleaseTitle(s string) *SearchQuery { return q.set("release_title", s) }

// Credit searches by release credit.
func (q *SearchQuery) Credit(s string) *SearchQuery { return q.set("credit", s) }

// Artist searches by artist name.
func (q *SearchQuery) Artist(s string) *SearchQuery { return q.set("artist", s) }

// ANV searches by artist name variation.
func (q *SearchQuery) ANV(s string) *SearchQuery { return q.set("anv", s) }

// Label searches by label name.
func (q *SearchQuery) Label(s string) *SearchQuery { return q.set("label", s) }

// Genre searches by genre.
func (q *SearchQuery) Genre(s string) *SearchQuery { return q.set("genre", s) }

// Style searches by style.
func (q *SearchQuery) Style(s string) *SearchQuery { return q.set("style", s) }

// Country searches by release country.
func (q *SearchQuery) Country(s string) *SearchQuery { return q.set("country", s) }

// Year searches by release year. It is a string so ranges such as
// "1980-1985" pass through untouched.
func (q *SearchQuery) Year(s string) *SearchQuery { return q.set("year", s) }

// Format searches by format, e.g. "Vinyl".
func (q *SearchQuery) Format(s string) *SearchQuery { return q.set("format", s) }

// Catno searches by catalog number.
func (q *SearchQuery) Catno(s string) *SearchQuery { return q.set("catno", s) }

// Barcode searches by barcode.
func (q *SearchQuery) Barcode(s string) *SearchQuery { return q.set("barcode", s) }

// Track searches by track title.
func (q *SearchQuery) Track(s string) *SearchQuery { return q.set("track", s) }

// Submitter searches by submitter username.
func (q *SearchQuery) Submitter(s string) *SearchQuery { return q.set("submitter", s) }

// Contributor searches by contributor username.
func (q *SearchQuery) Contributor(s string) *SearchQuery { return q.set("contributor", s) }

// Pagination requests a specific results page. Without it the API default
// page size applies and no paging parameters are sent.
func (q *SearchQuery) Pagination(page, perPage int) *SearchQuery {
	q.paged = true
	q.page = page
	q.perPage = perPage
	return q
}

func (q *SearchQuery) set(key, value string) *SearchQuery {
	q.params.set(key, value)
	return q
}

// URL returns {base}/database/search?q={query} followed by every other
// parameter that was set.
func (q *SearchQuery) URL() string {
	var b strings.Builder
	b.WriteString(q.baseURL)
	b.WriteByte('/')
	b.WriteString(ResourceSearch.String())
	b.WriteString("/search?q=")
	b.WriteString(url.QueryEscape(q.q))
	for _, k := range q.params.keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.params.values[k]))
	}
	if q.paged {
		b.WriteString("&page=")
		b.WriteString(strconv.Itoa(q.page))
		b.WriteString("&per_page=")
		b.WriteString(strconv.Itoa(q.perPage))
	}
	return b.String()
}

// Get runs the search. Discogs requires authentication for this endpoint.
func (q *SearchQuery) Get(ctx context.Context) (*SearchResults, error) {
	return get[SearchResults](ctx, &q.query, q.URL())
}
