package discogs

import (
	"context"
)

// ArtistQuery builds requests for /artists/{id} and its release listing.
type ArtistQuery struct {
	query
	id       int
	releases bool
	page     int
	perPage  int
}

// NewArtistQuery creates a query for the artist with the given id. No
// validation is done on id.
func NewArtistQuery(id int, cfg QueryConfig) *ArtistQuery {
	return &ArtistQuery{
		query:   newQuery(cfg),
		id:      id,
		page:    DefaultPage,
		perPage: DefaultPerPage,
	}
}

// Releases switches URL to the artist's release listing.
func (q *ArtistQuery) Releases() *ArtistQuery {
	q.releases = true
	return q
}

// Pagination sets the page and page size of the release listing.
func (q *ArtistQuery) Pagination(page, perPage int) *ArtistQuery {
	q.page = page
	q.perPage = perPage
	return q
}

// URL returns the request URL: the artist itself, or its release listing
// when Releases was called.
func (q *ArtistQuery) URL() string {
	if q.releases {
		return q.releasesURL()
	}
	return q.resourceURL(ResourceArtist, q.id)
}

func (q *ArtistQuery) releasesURL() string {
	return q.pagedURL(ResourceArtist, q.id, "releases", q.page, q.perPage)
}

// Get fetches the artist.
//
// Example:
//
//	artist, err := client.Artist(45).Get(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(artist.Name, artist.Profile)
func (q *ArtistQuery) Get(ctx context.Context) (*Artist, error) {
	return get[Artist](ctx, &q.query, q.resourceURL(ResourceArtist, q.id))
}

// GetReleases fetches one page of the artist's releases and masters.
//
// Example:
//
//	page, err := client.Artist(45).Pagination(2, 100).GetReleases(ctx)
func (q *ArtistQuery) GetReleases(ctx context.Context) (*ReleaseListing, error) {
	return get[ReleaseListing](ctx, &q.query, q.releasesURL())
}
