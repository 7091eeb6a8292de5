package discogs

import (
	"encoding/json"
	"fmt"
)

// Status is the moderation status of a release.
type Status string

// Release statuses returned by Discogs.
const (
	StatusAccepted Status = "Accepted"
	StatusDraft    Status = "Draft"
	StatusDeleted  Status = "Deleted"
	StatusRejected Status = "Rejected"
)

var statuses = map[Status]bool{
	StatusAccepted: true,
	StatusDraft:    true,
	StatusDeleted:  true,
	StatusRejected: true,
}

// UnmarshalJSON accepts only the known status strings, case-sensitively.
func (s *Status) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, "status", statuses)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// DataQuality is the community-assessed quality of a database entry.
type DataQuality string

// Data quality grades returned by Discogs.
const (
	DataQualityCorrect               DataQuality = "Correct"
	DataQualityNeedsVote             DataQuality = "Needs Vote"
	DataQualityCompleteAndCorrect    DataQuality = "Complete and Correct"
	DataQualityNeedsMinorChanges     DataQuality = "Needs Minor Changes"
	DataQualityNeedsMajorChanges     DataQuality = "Needs Major Changes"
	DataQualityEntirelyIncorrect     DataQuality = "Entirely Incorrect"
	DataQualityEntirelyIncorrectEdit DataQuality = "Entirely Incorrect Edit"
)

var dataQualities = map[DataQuality]bool{
	DataQualityCorrect:               true,
	DataQualityNeedsVote:             true,
	DataQualityCompleteAndCorrect:    true,
	DataQualityNeedsMinorChanges:     true,
	DataQualityNeedsMajorChanges:     true,
	DataQualityEntirelyIncorrect:     true,
	DataQualityEntirelyIncorrectEdit: true,
}

// UnmarshalJSON accepts only the known data quality strings, case-sensitively.
func (q *DataQuality) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, "data_quality", dataQualities)
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// SearchType restricts a database search to one kind of entity.
type SearchType string

// Search types accepted by the database search endpoint.
const (
	SearchRelease SearchType = "release"
	SearchMaster  SearchType = "master"
	SearchArtist  SearchType = "artist"
	SearchLabel   SearchType = "label"
)

// ParseSearchType validates s as a SearchType.
func ParseSearchType(s string) (SearchType, error) {
	switch t := SearchType(s); t {
	case SearchRelease, SearchMaster, SearchArtist, SearchLabel:
		return t, nil
	default:
		return "", fmt.Errorf("discogs: unknown search type %q", s)
	}
}

// Resource is a top-level API collection.
type Resource int

const (
	ResourceRelease Resource = iota
	ResourceMaster
	ResourceArtist
	ResourceLabel
	ResourceSearch
)

// String returns the URL path segment for the resource.
func (r Resource) String() string {
	switch r {
	case ResourceRelease:
		return "releases"
	case ResourceMaster:
		return "masters"
	case ResourceArtist:
		return "artists"
	case ResourceLabel:
		return "labels"
	case ResourceSearch:
		return "database"
	default:
		return "unknown"
	}
}

// unmarshalEnum treats null as absent, like encoding/json does for plain
// strings.
func unmarshalEnum[T ~string](data []byte, field string, known map[T]bool) (T, error) {
	if string(data) == "null" {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	v := T(s)
	if !known[v] {
		return "", fmt.Errorf("%s: unknown value %q", field, s)
	}
	return v, nil
}
