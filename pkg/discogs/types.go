package discogs

import (
	"encoding/json"
	"fmt"
)

// Discogs API resource types.
//
// Fields the API always returns are mandatory: a document without them
// fails to decode. Everything else is optional and decodes to its zero
// value when absent. Unknown fields are ignored.

// Artist is a person or group, either as a full /artists/{id} record or as
// a credit embedded in a release, track, or another artist.
type Artist struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ResourceURL string `json:"resource_url"`

	// Credit fields, present when the artist is embedded in a release.
	ANV    string `json:"anv,omitempty"`
	Join   string `json:"join,omitempty"`
	Role   string `json:"role,omitempty"`
	Tracks string `json:"tracks,omitempty"`

	// Membership flag, present on entries of Members.
	Active *bool `json:"active,omitempty"`

	URI            string      `json:"uri,omitempty"`
	ReleasesURL    string      `json:"releases_url,omitempty"`
	Profile        string      `json:"profile,omitempty"`
	RealName       string      `json:"realname,omitempty"`
	NameVariations []string    `json:"namevariations,omitempty"`
	URLs           []string    `json:"urls,omitempty"`
	Images         []Image     `json:"images,omitempty"`
	ThumbnailURL   string      `json:"thumbnail_url,omitempty"`
	Aliases        []Artist    `json:"aliases,omitempty"`
	Members        []Artist    `json:"members,omitempty"`
	Groups         []Artist    `json:"groups,omitempty"`
	DataQuality    DataQuality `json:"data_quality,omitempty"`
}

// UnmarshalJSON enforces the mandatory artist fields.
func (a *Artist) UnmarshalJSON(data []byte) error {
	type plain Artist
	return unmarshalRequired(data, (*plain)(a), "artist", "id", "name", "resource_url")
}

// Label is a record label, either as a full /labels/{id} record or as an
// entry of a release's labels or series.
type Label struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ResourceURL string `json:"resource_url"`

	// Release context.
	Catno          string `json:"catno,omitempty"`
	EntityType     string `json:"entity_type,omitempty"`
	EntityTypeName string `json:"entity_type_name,omitempty"`

	URI          string      `json:"uri,omitempty"`
	ReleasesURL  string      `json:"releases_url,omitempty"`
	Profile      string      `json:"profile,omitempty"`
	ContactInfo  string      `json:"contact_info,omitempty"`
	URLs         []string    `json:"urls,omitempty"`
	Images       []Image     `json:"images,omitempty"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	ParentLabel  *Label      `json:"parent_label,omitempty"`
	Sublabels    []Label     `json:"sublabels,omitempty"`
	DataQuality  DataQuality `json:"data_quality,omitempty"`
}

// UnmarshalJSON enforces the mandatory label fields.
func (l *Label) UnmarshalJSON(data []byte) error {
	type plain Label
	return unmarshalRequired(data, (*plain)(l), "label", "id", "name", "resource_url")
}

// Company is an entity credited on a release (pressing plant, studio,
// publisher, ...).
type Company struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	ResourceURL string `json:"resource_url"`

	Catno          string `json:"catno,omitempty"`
	EntityType     string `json:"entity_type,omitempty"`
	EntityTypeName string `json:"entity_type_name,omitempty"`
}

// UnmarshalJSON enforces the mandatory company fields.
func (c *Company) UnmarshalJSON(data []byte) error {
	type plain Company
	return unmarshalRequired(data, (*plain)(c), "company", "id", "name", "resource_url")
}

// Image is an image attached to an artist, label, release, or master.
type Image struct {
	ImageType   string `json:"type"` // "primary" or "secondary"
	URI         string `json:"uri"`
	ResourceURL string `json:"resource_url"`
	URI150      string `json:"uri150,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// UnmarshalJSON enforces the mandatory image fields.
func (i *Image) UnmarshalJSON(data []byte) error {
	type plain Image
	return unmarshalRequired(data, (*plain)(i), "image", "type", "uri", "resource_url")
}

// Track is a tracklist entry. Index tracks and headings carry SubTracks.
type Track struct {
	Position     string   `json:"position"`
	Title        string   `json:"title"`
	TrackType    string   `json:"type_,omitempty"` // "track", "heading" or "index"
	Duration     string   `json:"duration,omitempty"`
	Artists      []Artist `json:"artists,omitempty"`
	ExtraArtists []Artist `json:"extraartists,omitempty"`
	SubTracks    []Track  `json:"sub_tracks,omitempty"`
}

// UnmarshalJSON enforces the mandatory track fields.
func (t *Track) UnmarshalJSON(data []byte) error {
	type plain Track
	return unmarshalRequired(data, (*plain)(t), "track", "position", "title")
}

// Video is an embedded video linked to a release or master.
type Video struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Duration    int    `json:"duration,omitempty"` // seconds
	Embed       bool   `json:"embed,omitempty"`
}

// UnmarshalJSON enforces the mandatory video fields.
func (v *Video) UnmarshalJSON(data []byte) error {
	type plain Video
	return unmarshalRequired(data, (*plain)(v), "video", "uri", "title")
}

// Community holds collection statistics and moderation data for a release.
type Community struct {
	Have         int           `json:"have,omitempty"`
	Want         int           `json:"want,omitempty"`
	Rating       *Rating       `json:"rating,omitempty"`
	Status       Status        `json:"status,omitempty"`
	DataQuality  DataQuality   `json:"data_quality,omitempty"`
	Submitter    *Contributor  `json:"submitter,omitempty"`
	Contributors []Contributor `json:"contributors,omitempty"`
}

// Rating is the community rating of a release.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// UnmarshalJSON enforces the mandatory rating fields.
func (r *Rating) UnmarshalJSON(data []byte) error {
	type plain Rating
	return unmarshalRequired(data, (*plain)(r), "rating", "average", "count")
}

// Contributor is a Discogs user who submitted or edited an entry.
type Contributor struct {
	Username    string `json:"username"`
	ResourceURL string `json:"resource_url"`
}

// UnmarshalJSON enforces the mandatory contributor fields.
func (c *Contributor) UnmarshalJSON(data []byte) error {
	type plain Contributor
	return unmarshalRequired(data, (*plain)(c), "contributor", "username", "resource_url")
}

// Identifier is a barcode, matrix number, or other release identifier.
type Identifier struct {
	IdentifierType string `json:"type"`
	Value          string `json:"value"`
	Description    string `json:"description,omitempty"`
}

// UnmarshalJSON enforces the mandatory identifier fields.
func (i *Identifier) UnmarshalJSON(data []byte) error {
	type plain Identifier
	return unmarshalRequired(data, (*plain)(i), "identifier", "type", "value")
}

// ReleaseFormat describes one physical or digital format of a release.
type ReleaseFormat struct {
	Name         string   `json:"name"`
	Qty          string   `json:"qty"`
	Text         string   `json:"text,omitempty"`
	Descriptions []string `json:"descriptions,omitempty"`
}

// UnmarshalJSON enforces the mandatory format fields.
func (f *ReleaseFormat) UnmarshalJSON(data []byte) error {
	type plain ReleaseFormat
	return unmarshalRequired(data, (*plain)(f), "format", "name", "qty")
}

// Release is a particular physical or digital object released by one or
// more artists.
type Release struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ResourceURL string `json:"resource_url"`

	Status            Status          `json:"status,omitempty"`
	DataQuality       DataQuality     `json:"data_quality,omitempty"`
	URI               string          `json:"uri,omitempty"`
	Year              int             `json:"year,omitempty"`
	Country           string          `json:"country,omitempty"`
	Released          string          `json:"released,omitempty"`
	ReleasedFormatted string          `json:"released_formatted,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	Thumb             string          `json:"thumb,omitempty"`
	DateAdded         string          `json:"date_added,omitempty"`
	DateChanged       string          `json:"date_changed,omitempty"`
	Artists           []Artist        `json:"artists,omitempty"`
	ArtistsSort       string          `json:"artists_sort,omitempty"`
	ExtraArtists      []Artist        `json:"extraartists,omitempty"`
	Labels            []Label         `json:"labels,omitempty"`
	Series            []Label         `json:"series,omitempty"`
	Companies         []Company       `json:"companies,omitempty"`
	Formats           []ReleaseFormat `json:"formats,omitempty"`
	FormatQuantity    int             `json:"format_quantity,omitempty"`
	Genres            []string        `json:"genres,omitempty"`
	Styles            []string        `json:"styles,omitempty"`
	Identifiers       []Identifier    `json:"identifiers,omitempty"`
	Images            []Image         `json:"images,omitempty"`
	Tracklist         []Track         `json:"tracklist,omitempty"`
	Videos            []Video         `json:"videos,omitempty"`
	Community         *Community      `json:"community,omitempty"`
	MasterID          int             `json:"master_id,omitempty"`
	MasterURL         string          `json:"master_url,omitempty"`
	NumForSale        *int            `json:"num_for_sale,omitempty"`
	LowestPrice       *float64        `json:"lowest_price,omitempty"`
	EstimatedWeight   *int            `json:"estimated_weight,omitempty"`
}

// UnmarshalJSON enforces the mandatory release fields.
func (r *Release) UnmarshalJSON(data []byte) error {
	type plain Release
	return unmarshalRequired(data, (*plain)(r), "release", "id", "title", "resource_url")
}

// Master groups all versions of a release under one canonical entry.
type Master struct {
	ID             int    `json:"id"`
	ResourceURL    string `json:"resource_url"`
	MainRelease    int    `json:"main_release"`
	MainReleaseURL string `json:"main_release_url"`

	MostRecentRelease    int         `json:"most_recent_release,omitempty"`
	MostRecentReleaseURL string      `json:"most_recent_release_url,omitempty"`
	VersionsURL          string      `json:"versions_url,omitempty"`
	Title                string      `json:"title,omitempty"`
	Year                 int         `json:"year,omitempty"`
	URI                  string      `json:"uri,omitempty"`
	Notes                string      `json:"notes,omitempty"`
	Artists              []Artist    `json:"artists,omitempty"`
	Genres               []string    `json:"genres,omitempty"`
	Styles               []string    `json:"styles,omitempty"`
	Images               []Image     `json:"images,omitempty"`
	Tracklist            []Track     `json:"tracklist,omitempty"`
	Videos               []Video     `json:"videos,omitempty"`
	DataQuality          DataQuality `json:"data_quality,omitempty"`
	NumForSale           *int        `json:"num_for_sale,omitempty"`
	LowestPrice          *float64    `json:"lowest_price,omitempty"`
}

// UnmarshalJSON enforces the mandatory master fields.
func (m *Master) UnmarshalJSON(data []byte) error {
	type plain Master
	return unmarshalRequired(data, (*plain)(m), "master", "id", "resource_url", "main_release", "main_release_url")
}

// FieldError reports a mandatory field that was absent or null.
type FieldError struct {
	Type  string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Type, e.Field)
}

// unmarshalRequired checks that data is an object carrying every field in
// required, then decodes it into v. v must not have its own UnmarshalJSON.
func unmarshalRequired(data []byte, v any, typ string, required ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}
	if obj == nil {
		return fmt.Errorf("%s: expected object, got null", typ)
	}
	for _, field := range required {
		raw, ok := obj[field]
		if !ok || string(raw) == "null" {
			return &FieldError{Type: typ, Field: field}
		}
	}
	return json.Unmarshal(data, v)
}
