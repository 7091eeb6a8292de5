// Package discogs provides a typed client for the Discogs database API.
//
// # Overview
//
// The package covers the read-only database endpoints: artists, labels,
// releases, masters, their paginated sub-listings, and database search.
// Every response is decoded into a typed record. Fields Discogs always
// returns are mandatory and fail decoding when absent; everything else is
// optional.
//
// # Installation
//
//	go get github.com/jfmyers9/crates/pkg/discogs
//
// # Quick Start
//
// Discogs requires every request to carry a User-Agent identifying the
// application:
//
//	client, err := discogs.NewClient(discogs.Config{
//	    UserAgent: "MyCollection/1.0 +https://example.com",
//	    Token:     "your-personal-access-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	release, err := client.Release(249504).Get(ctx)
//
// # Authentication
//
// Two mutually exclusive schemes are supported, both sent in the
// Authorization header:
//
//	Authorization: Discogs key=<key>, secret=<secret>
//	Authorization: Discogs token=<token>
//
// Set Key and Secret, or Token. When both are configured the token wins.
// Headers can be parsed back with ParseAuthorization.
//
// # Queries
//
// The client holds shared configuration only. Each factory method returns
// a new query that owns a snapshot of it:
//
//	// An artist and the second page of their releases
//	artist, err := client.Artist(45).Get(ctx)
//	page, err := client.Artist(45).Pagination(2, 100).GetReleases(ctx)
//
//	// Versions of a master
//	versions, err := client.Master(1000).GetVersions(ctx)
//
//	// Search
//	results, err := client.Search().
//	    Query("nirvana").
//	    Type(discogs.SearchRelease).
//	    Year("1991").
//	    Get(ctx)
//
// Embedded records link back to their full form through ResourceURL and
// can be expanded in place with Refresh:
//
//	label := release.Labels[0]
//	err := label.Refresh(ctx, client.Fetch)
//
// # Error Handling
//
// Every query failure is a *QueryError whose Kind tells where it failed:
//
//	artist, err := client.Artist(id).Get(ctx)
//	if discogs.IsNotFound(err) {
//	    // 404
//	}
//	var qerr *discogs.QueryError
//	if errors.As(err, &qerr) && qerr.Kind == discogs.KindJSONDecode {
//	    // the body did not match the schema
//	}
//
// Non-200 responses are never decoded; the raw body is kept on
// QueryError.Response. Malformed Authorization headers produce a
// *HeaderError matching ErrHeaderParse.
//
// # Rate Limiting
//
// Config.RateLimit is advisory. The client does not throttle requests.
//
// # Discogs API Documentation
//
// https://www.discogs.com/developers
package discogs
