package catalog

import (
	"context"
	"fmt"

	"github.com/jfmyers9/crates/pkg/discogs"
)

// SearchParams mirrors the database search filters. Empty fields are not
// sent.
type SearchParams struct {
	Query        string
	Type         discogs.SearchType
	Title        string
	ReleaseTitle string
	Credit       string
	Artist       string
	ANV          string
	Label        string
	Genre        string
	Style        string
	Country      string
	Year         string
	Format       string
	Catno        string
	Barcode      string
	Track        string
	Submitter    string
	Contributor  string
	Page         int
	PerPage      int
}

// Query builds the search query for p
func (c *Client) Query(p SearchParams) *discogs.SearchQuery {
	q := c.client.Search().Query(p.Query)
	if p.Type != "" {
		q.Type(p.Type)
	}

	setters := []struct {
		value string
		set   func(string) *discogs.SearchQuery
	}{
		{p.Title, q.Title},
		{p.ReleaseTitle, q.ReleaseTitle},
		{p.Credit, q.Credit},
		{p.Artist, q.Artist},
		{p.ANV, q.ANV},
		{p.Label, q.Label},
		{p.Genre, q.Genre},
		{p.Style, q.Style},
		{p.Country, q.Country},
		{p.Year, q.Year},
		{p.Format, q.Format},
		{p.Catno, q.Catno},
		{p.Barcode, q.Barcode},
		{p.Track, q.Track},
		{p.Submitter, q.Submitter},
		{p.Contributor, q.Contributor},
	}
	for _, s := range setters {
		if s.value != "" {
			s.set(s.value)
		}
	}

	if p.Page > 0 || p.PerPage > 0 {
		page, perPage := p.Page, p.PerPage
		if page <= 0 {
			page = discogs.DefaultPage
		}
		if perPage <= 0 {
			perPage = discogs.DefaultPerPage
		}
		q.Pagination(page, perPage)
	}
	return q
}

// Search runs a database search
func (c *Client) Search(ctx context.Context, p SearchParams) (*discogs.SearchResults, error) {
	if !c.IsAuthenticated() {
		c.logger.Warn().Msg("Database search requires credentials; run 'crates auth'")
	}

	results, err := c.Query(p).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return results, nil
}
