package discogs

import (
	"context"
)

// Refresher is implemented by records that can re-fetch themselves from
// their own resource_url.
type Refresher interface {
	Refresh(ctx context.Context, f Fetcher) error
}

var (
	_ Refresher = (*Artist)(nil)
	_ Refresher = (*Label)(nil)
	_ Refresher = (*Company)(nil)
	_ Refresher = (*Release)(nil)
	_ Refresher = (*Master)(nil)
)

// Refresh replaces every field of a with the record at a.ResourceURL.
// This turns an artist credit embedded in a release into a full artist.
//
// Example:
//
//	credit := release.Artists[0]
//	if err := credit.Refresh(ctx, client.Fetch); err != nil {
//	    return err
//	}
func (a *Artist) Refresh(ctx context.Context, f Fetcher) error {
	return refresh(ctx, f, a.ResourceURL, a)
}

// Refresh replaces every field of l with the record at l.ResourceURL.
func (l *Label) Refresh(ctx context.Context, f Fetcher) error {
	return refresh(ctx, f, l.ResourceURL, l)
}

// Refresh replaces every field of c with the label record at c.ResourceURL.
// Discogs serves companies from /labels.
func (c *Company) Refresh(ctx context.Context, f Fetcher) error {
	return refresh(ctx, f, c.ResourceURL, c)
}

// Refresh replaces every field of r with the record at r.ResourceURL.
func (r *Release) Refresh(ctx context.Context, f Fetcher) error {
	return refresh(ctx, f, r.ResourceURL, r)
}

// Refresh replaces every field of m with the record at m.ResourceURL.
func (m *Master) Refresh(ctx context.Context, f Fetcher) error {
	return refresh(ctx, f, m.ResourceURL, m)
}
