package discogs

import (
	"context"
)

// MasterQuery builds requests for /masters/{id} and its version listing.
type MasterQuery struct {
	query
	id       int
	versions bool
	page     int
	perPage  int
}

// NewMasterQuery creates a query for the master release with the given id.
func NewMasterQuery(id int, cfg QueryConfig) *MasterQuery {
	return &MasterQuery{
		query:   newQuery(cfg),
		id:      id,
		page:    DefaultPage,
		perPage: DefaultPerPage,
	}
}

// Versions switches URL to the master's version listing.
func (q *MasterQuery) Versions() *MasterQuery {
	q.versions = true
	return q
}

// Pagination sets the page and page size of the version listing.
func (q *MasterQuery) Pagination(page, perPage int) *MasterQuery {
	q.page = page
	q.perPage = perPage
	return q
}

// URL returns the request URL.
func (q *MasterQuery) URL() string {
	if q.versions {
		return q.versionsURL()
	}
	return q.resourceURL(ResourceMaster, q.id)
}

func (q *MasterQuery) versionsURL() string {
	return q.pagedURL(ResourceMaster, q.id, "versions", q.page, q.perPage)
}

// Get fetches the master release.
func (q *MasterQuery) Get(ctx context.Context) (*Master, error) {
	return get[Master](ctx, &q.query, q.resourceURL(ResourceMaster, q.id))
}

// GetVersions fetches one page of the releases grouped under the master.
func (q *MasterQuery) GetVersions(ctx context.Context) (*VersionListing, error) {
	return get[VersionListing](ctx, &q.query, q.versionsURL())
}
