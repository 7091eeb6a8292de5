package discogs

import (
	"context"
)

// LabelQuery builds requests for /labels/{id} and its release listing.
type LabelQuery struct {
	query
	id       int
	releases bool
	page     int
	perPage  int
}

// NewLabelQuery creates a query for the label with the given id.
func NewLabelQuery(id int, cfg QueryConfig) *LabelQuery {
	return &LabelQuery{
		query:   newQuery(cfg),
		id:      id,
		page:    DefaultPage,
		perPage: DefaultPerPage,
	}
}

// Releases switches URL to the label's release listing.
func (q *LabelQuery) Releases() *LabelQuery {
	q.releases = true
	return q
}

// Pagination sets the page and page size of the release listing.
func (q *LabelQuery) Pagination(page, perPage int) *LabelQuery {
	q.page = page
	q.perPage = perPage
	return q
}

// URL returns the request URL.
func (q *LabelQuery) URL() string {
	if q.releases {
		return q.releasesURL()
	}
	return q.resourceURL(ResourceLabel, q.id)
}

func (q *LabelQuery) releasesURL() string {
	return q.pagedURL(ResourceLabel, q.id, "releases", q.page, q.perPage)
}

// Get fetches the label, including its sublabels and parent label.
func (q *LabelQuery) Get(ctx context.Context) (*Label, error) {
	return get[Label](ctx, &q.query, q.resourceURL(ResourceLabel, q.id))
}

// GetReleases fetches one page of the label's releases.
func (q *LabelQuery) GetReleases(ctx context.Context) (*ReleaseListing, error) {
	return get[ReleaseListing](ctx, &q.query, q.releasesURL())
}
