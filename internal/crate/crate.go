// Package crate stores releases the user has picked, in SQLite.
package crate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jfmyers9/crates/pkg/discogs"
)

// ErrNotFound is returned when a release is not in the crate
var ErrNotFound = errors.New("release not in crate")

// Crate is a local collection of Discogs releases backed by SQLite
type Crate struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is a release stored in the crate
type Entry struct {
	ID          int
	Title       string
	Artists     string
	Year        int
	Country     string
	ResourceURL string
	AddedAt     time.Time
	RefreshedAt time.Time
	Release     *discogs.Release
}

// Open opens or creates the crate database at path
func Open(path string) (*Crate, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set connection pool size to 1 for in-memory databases to ensure consistency
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000", // Wait up to 10 seconds on lock
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS releases (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			artists TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL DEFAULT 0,
			country TEXT NOT NULL DEFAULT '',
			resource_url TEXT NOT NULL,
			data TEXT NOT NULL,
			added_at INTEGER NOT NULL,
			refreshed_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_added_at ON releases(added_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Crate{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (c *Crate) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Add stores a release. Adding a release that is already in the crate
// replaces its data and keeps the original added time.
func (c *Crate) Add(ctx context.Context, release *discogs.Release) error {
	if release == nil {
		return fmt.Errorf("cannot add nil release")
	}

	data, err := json.Marshal(release)
	if err != nil {
		return fmt.Errorf("failed to encode release %d: %w", release.ID, err)
	}

	now := c.now().Unix()
	query := `
		INSERT INTO releases (id, title, artists, year, country, resource_url, data, added_at, refreshed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artists = excluded.artists,
			year = excluded.year,
			country = excluded.country,
			resource_url = excluded.resource_url,
			data = excluded.data,
			refreshed_at = excluded.refreshed_at
	`

	_, err = c.db.ExecContext(ctx, query,
		release.ID,
		release.Title,
		ArtistNames(release),
		release.Year,
		release.Country,
		release.ResourceURL,
		string(data),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert release %d: %w", release.ID, err)
	}

	return nil
}

// Remove deletes a release from the crate
func (c *Crate) Remove(ctx context.Context, id int) error {
	result, err := c.db.ExecContext(ctx, "DELETE FROM releases WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove release %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("release %d: %w", id, ErrNotFound)
	}

	return nil
}

// Get returns a single entry with its full release
func (c *Crate) Get(ctx context.Context, id int) (*Entry, error) {
	query := `
		SELECT id, title, artists, year, country, resource_url, added_at, refreshed_at, data
		FROM releases
		WHERE id = ?
	`

	e, err := scanEntry(c.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("release %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// List returns every entry, most recently added first
func (c *Crate) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT id, title, artists, year, country, resource_url, added_at, refreshed_at, data
		FROM releases
		ORDER BY added_at DESC, id ASC
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query releases: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating releases: %w", err)
	}

	return entries, nil
}

// Count returns the number of releases in the crate
func (c *Crate) Count(ctx context.Context) (int, error) {
	var count int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM releases").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count releases: %w", err)
	}

	return count, nil
}

// Refresh re-fetches a stored release from its resource_url and saves the
// result. The stored copy is unchanged if the fetch fails.
func (c *Crate) Refresh(ctx context.Context, id int, fetch discogs.Fetcher) (*Entry, error) {
	e, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := e.Release.Refresh(ctx, fetch); err != nil {
		return nil, fmt.Errorf("failed to refresh release %d: %w", id, err)
	}

	if err := c.Add(ctx, e.Release); err != nil {
		return nil, err
	}

	return c.Get(ctx, e.Release.ID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var addedUnix, refreshedUnix int64
	var data string

	err := s.Scan(
		&e.ID,
		&e.Title,
		&e.Artists,
		&e.Year,
		&e.Country,
		&e.ResourceURL,
		&addedUnix,
		&refreshedUnix,
		&data,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan release: %w", err)
	}

	e.AddedAt = time.Unix(addedUnix, 0)
	e.RefreshedAt = time.Unix(refreshedUnix, 0)

	var release discogs.Release
	if err := json.Unmarshal([]byte(data), &release); err != nil {
		return nil, fmt.Errorf("failed to decode stored release %d: %w", e.ID, err)
	}
	e.Release = &release

	return &e, nil
}

// ArtistNames joins the credited artists the way Discogs displays them,
// using each credit's name variation and join string.
func ArtistNames(r *discogs.Release) string {
	if len(r.Artists) == 0 {
		return r.ArtistsSort
	}

	var b strings.Builder
	for i, a := range r.Artists {
		name := a.Name
		if a.ANV != "" {
			name = a.ANV
		}
		b.WriteString(name)

		if i == len(r.Artists)-1 {
			break
		}
		switch join := strings.TrimSpace(a.Join); join {
		case "", ",":
			b.WriteString(", ")
		default:
			b.WriteString(" " + join + " ")
		}
	}
	return b.String()
}
