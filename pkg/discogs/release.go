package discogs

import (
	"context"
)

// ReleaseQuery builds requests for /releases/{id}.
type ReleaseQuery struct {
	query
	id int
}

// NewReleaseQuery creates a query for the release with the given id.
func NewReleaseQuery(id int, cfg QueryConfig) *ReleaseQuery {
	return &ReleaseQuery{query: newQuery(cfg), id: id}
}

// URL returns the request URL.
func (q *ReleaseQuery) URL() string {
	return q.resourceURL(ResourceRelease, q.id)
}

// Get fetches the release.
func (q *ReleaseQuery) Get(ctx context.Context) (*Release, error) {
	return get[Release](ctx, &q.query, q.URL())
}
