package artwork

import (
	"strconv"
)

// Artwork is a single record returned by the artworks endpoint.
// Identity is the ID; ordering is fetch position only.
type Artwork struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	PlaceOfOrigin string  `json:"place_of_origin"`
	ArtistDisplay string  `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

// Fields lists the API field names requested for each record.
//
//nolint:gochecknoglobals // Fixed projection shared by the client and tests.
var Fields = []string{
	"id",
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}

// DateRange renders the start and end years as "1890-1895", a single year, or "".
func (a Artwork) DateRange() string {
	switch {
	case a.DateStart == nil && a.DateEnd == nil:
		return ""
	case a.DateStart == nil:
		return strconv.Itoa(*a.DateEnd)
	case a.DateEnd == nil || *a.DateEnd == *a.DateStart:
		return strconv.Itoa(*a.DateStart)
	default:
		return strconv.Itoa(*a.DateStart) + "-" + strconv.Itoa(*a.DateEnd)
	}
}

// InscriptionText returns the inscriptions or an empty string when absent.
func (a Artwork) InscriptionText() string {
	if a.Inscriptions == nil {
		return ""
	}
	return *a.Inscriptions
}

// Page is one page of records as produced by a single fetch.
type Page struct {
	// Index is the 1-based page index that produced this page.
	Index int `json:"index"`

	// Size is the page size that was requested.
	Size int `json:"size"`

	// Records holds at most Size records in fetch order.
	Records []Artwork `json:"records"`

	// TotalRecords is the dataset total reported by the source. Display hint only.
	TotalRecords int `json:"total_records"`

	// APIVersion is the version string reported by the source, if any.
	APIVersion string `json:"api_version,omitempty"`
}

// IsShort reports whether the page holds fewer records than requested,
// which means nothing exists beyond it.
func (p *Page) IsShort() bool {
	return len(p.Records) < p.Size
}

// IDs returns the record IDs in page order.
func IDs(records []Artwork) []int {
	ids := make([]int, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
