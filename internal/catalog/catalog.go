// Package catalog wraps the Discogs client with crates configuration,
// logging and multi-request helpers.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jfmyers9/crates/internal/config"
	"github.com/jfmyers9/crates/pkg/discogs"
)

const (
	// DefaultConcurrency caps parallel requests in Releases
	DefaultConcurrency = 4

	// MaxPages bounds AllArtistReleases against a listing that never ends
	MaxPages = 500

	requestTimeout = 30 * time.Second
)

// Client wraps the Discogs API client
type Client struct {
	client      *discogs.Client
	logger      zerolog.Logger
	concurrency int
}

// Option configures a Client
type Option func(*options)

type options struct {
	transport   discogs.Transport
	concurrency int
}

// WithTransport replaces the HTTP transport, mainly for tests
func WithTransport(t discogs.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithConcurrency sets how many requests Releases runs at once
func WithConcurrency(n int) Option {
	return func(o *options) { o.concurrency = n }
}

// New creates a Discogs client from configuration
func New(cfg *config.Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	o := options{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	logger = logger.With().Str("component", "catalog").Logger()

	client, err := discogs.NewClient(discogs.Config{
		UserAgent:  cfg.UserAgent,
		Key:        cfg.Discogs.Key,
		Secret:     cfg.Discogs.Secret,
		Token:      cfg.Discogs.Token,
		BaseURL:    cfg.BaseURL,
		RateLimit:  cfg.RateLimit,
		HTTPClient: &http.Client{Timeout: requestTimeout},
		Transport:  o.transport,
		Logger:     zerologAdapter{logger},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create discogs client: %w", err)
	}

	return &Client{
		client:      client,
		logger:      logger,
		concurrency: o.concurrency,
	}, nil
}

// Discogs returns the underlying API client
func (c *Client) Discogs() *discogs.Client {
	return c.client
}

// Fetch performs an authenticated GET, for use with Refresh
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.client.Fetch(ctx, url)
}

// IsAuthenticated checks if any credential is configured
func (c *Client) IsAuthenticated() bool {
	return c.client.Credential() != nil
}

// Artist fetches an artist by id
func (c *Client) Artist(ctx context.Context, id int) (*discogs.Artist, error) {
	artist, err := c.client.Artist(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %d: %w", id, err)
	}
	return artist, nil
}

// ArtistReleases fetches one page of an artist's releases
func (c *Client) ArtistReleases(ctx context.Context, id, page, perPage int) (*discogs.ReleaseListing, error) {
	listing, err := c.client.Artist(id).Pagination(page, perPage).GetReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get releases of artist %d: %w", id, err)
	}
	return listing, nil
}

// Label fetches a label by id
func (c *Client) Label(ctx context.Context, id int) (*discogs.Label, error) {
	label, err := c.client.Label(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get label %d: %w", id, err)
	}
	return label, nil
}

// LabelReleases fetches one page of a label's releases
func (c *Client) LabelReleases(ctx context.Context, id, page, perPage int) (*discogs.ReleaseListing, error) {
	listing, err := c.client.Label(id).Pagination(page, perPage).GetReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get releases of label %d: %w", id, err)
	}
	return listing, nil
}

// Release fetches a release by id
func (c *Client) Release(ctx context.Context, id int) (*discogs.Release, error) {
	release, err := c.client.Release(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get release %d: %w", id, err)
	}
	return release, nil
}

// Master fetches a master release by id
func (c *Client) Master(ctx context.Context, id int) (*discogs.Master, error) {
	master, err := c.client.Master(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get master %d: %w", id, err)
	}
	return master, nil
}

// MasterVersions fetches one page of a master's versions
func (c *Client) MasterVersions(ctx context.Context, id, page, perPage int) (*discogs.VersionListing, error) {
	listing, err := c.client.Master(id).Pagination(page, perPage).GetVersions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get versions of master %d: %w", id, err)
	}
	return listing, nil
}

// Releases fetches releases concurrently and returns them in the order of
// ids. The first failure cancels the remaining requests.
func (c *Client) Releases(ctx context.Context, ids []int) ([]*discogs.Release, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	// Each goroutine writes only its own index
	releases := make([]*discogs.Release, len(ids))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			release, err := c.Release(ctx, id)
			if err != nil {
				return err
			}
			releases[i] = release
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(releases)).Msg("Fetched releases")
	return releases, nil
}

// AllArtistReleases walks every page of an artist's release listing
func (c *Client) AllArtistReleases(ctx context.Context, id, perPage int) ([]discogs.ReleaseSummary, error) {
	var all []discogs.ReleaseSummary
	for page := discogs.DefaultPage; page <= MaxPages; page++ {
		listing, err := c.ArtistReleases(ctx, id, page, perPage)
		if err != nil {
			return nil, err
		}
		all = append(all, listing.Releases...)

		c.logger.Debug().
			Int("artist", id).
			Int("page", listing.Pagination.Page).
			Int("pages", listing.Pagination.Pages).
			Msg("Fetched release page")

		if !listing.Pagination.HasNext() {
			return all, nil
		}
	}
	return nil, fmt.Errorf("artist %d has more than %d pages of releases", id, MaxPages)
}

// zerologAdapter satisfies discogs.Logger
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug().Msgf(format, args...)
}
