package discogs

// Default pagination values used by listing queries.
const (
	DefaultPage    = 1
	DefaultPerPage = 50
)

// Pagination describes the position of a listing page. Page is 1-indexed.
// Values are taken as returned by the API; no range validation is done.
type Pagination struct {
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Items   int            `json:"items"`
	Pages   int            `json:"pages"`
	URLs    PaginationURLs `json:"urls"`
}

// PaginationURLs links to neighbouring pages. Next is empty on the last page.
type PaginationURLs struct {
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
}

// UnmarshalJSON enforces the mandatory pagination fields.
func (p *Pagination) UnmarshalJSON(data []byte) error {
	type plain Pagination
	return unmarshalRequired(data, (*plain)(p), "pagination", "page", "per_page", "items", "pages", "urls")
}

// HasNext reports whether another page follows this one.
func (p Pagination) HasNext() bool {
	return p.URLs.Next != ""
}

// ReleaseSummary is an entry of an artist or label release listing. It is
// flatter than Release: artist and label are display strings.
type ReleaseSummary struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ResourceURL string `json:"resource_url"`

	Type        string `json:"type,omitempty"` // "release" or "master"
	MainRelease int    `json:"main_release,omitempty"`
	Artist      string `json:"artist,omitempty"`
	Label       string `json:"label,omitempty"`
	Format      string `json:"format,omitempty"`
	Catno       string `json:"catno,omitempty"`
	Role        string `json:"role,omitempty"`
	Year        int    `json:"year,omitempty"`
	Thumb       string `json:"thumb,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// UnmarshalJSON enforces the mandatory summary fields.
func (s *ReleaseSummary) UnmarshalJSON(data []byte) error {
	type plain ReleaseSummary
	return unmarshalRequired(data, (*plain)(s), "release summary", "id", "title", "resource_url")
}

// ReleaseListing is one page of /artists/{id}/releases or
// /labels/{id}/releases.
type ReleaseListing struct {
	Pagination Pagination       `json:"pagination"`
	Releases   []ReleaseSummary `json:"releases"`
}

// UnmarshalJSON requires the pagination block.
func (l *ReleaseListing) UnmarshalJSON(data []byte) error {
	type plain ReleaseListing
	return unmarshalRequired(data, (*plain)(l), "release listing", "pagination")
}

// MasterVersion is an entry of /masters/{id}/versions.
type MasterVersion struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ResourceURL string `json:"resource_url"`

	Label        string   `json:"label,omitempty"`
	Country      string   `json:"country,omitempty"`
	Released     string   `json:"released,omitempty"`
	Format       string   `json:"format,omitempty"`
	MajorFormats []string `json:"major_formats,omitempty"`
	Catno        string   `json:"catno,omitempty"`
	Thumb        string   `json:"thumb,omitempty"`
	Status       Status   `json:"status,omitempty"`
}

// UnmarshalJSON enforces the mandatory version fields.
func (v *MasterVersion) UnmarshalJSON(data []byte) error {
	type plain MasterVersion
	return unmarshalRequired(data, (*plain)(v), "master version", "id", "title", "resource_url")
}

// VersionListing is one page of /masters/{id}/versions.
type VersionListing struct {
	Pagination Pagination      `json:"pagination"`
	Versions   []MasterVersion `json:"versions"`
}

// UnmarshalJSON requires the pagination block.
func (l *VersionListing) UnmarshalJSON(data []byte) error {
	type plain VersionListing
	return unmarshalRequired(data, (*plain)(l), "version listing", "pagination")
}

// SearchResult is a single database search hit. The fields present depend
// on Type.
type SearchResult struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	ResourceURL string `json:"resource_url"`

	Title      string           `json:"title,omitempty"`
	URI        string           `json:"uri,omitempty"`
	Thumb      string           `json:"thumb,omitempty"`
	CoverImage string           `json:"cover_image,omitempty"`
	Country    string           `json:"country,omitempty"`
	Year       string           `json:"year,omitempty"`
	Format     []string         `json:"format,omitempty"`
	Label      []string         `json:"label,omitempty"`
	Genre      []string         `json:"genre,omitempty"`
	Style      []string         `json:"style,omitempty"`
	Barcode    []string         `json:"barcode,omitempty"`
	Catno      string           `json:"catno,omitempty"`
	MasterID   int              `json:"master_id,omitempty"`
	MasterURL  string           `json:"master_url,omitempty"`
	Community  *SearchCommunity `json:"community,omitempty"`
}

// UnmarshalJSON enforces the mandatory search result fields.
func (r *SearchResult) UnmarshalJSON(data []byte) error {
	type plain SearchResult
	return unmarshalRequired(data, (*plain)(r), "search result", "id", "type", "resource_url")
}

// SearchCommunity carries the have/want counters of a search hit.
type SearchCommunity struct {
	Have int `json:"have"`
	Want int `json:"want"`
}

// SearchResults is one page of /database/search.
type SearchResults struct {
	Pagination Pagination     `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// UnmarshalJSON requires the pagination block.
func (r *SearchResults) UnmarshalJSON(data []byte) error {
	type plain SearchResults
	return unmarshalRequired(data, (*plain)(r), "search results", "pagination")
}
