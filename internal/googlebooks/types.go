package googlebooks

import "strings"

// VolumesResponse matches the Google Books volumes search response.
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is one item in a volumes search response.
type Volume struct {
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo holds the bibliographic metadata for one volume.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	PageCount           int                  `json:"pageCount"`
	Description         string               `json:"description"`
	Categories          []string             `json:"categories"`
	Language            string               `json:"language"`
	MaturityRating      string               `json:"maturityRating"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

// ImageLinks holds the cover image URLs for a volume.
type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// IndustryIdentifier is one external identifier (ISBN_10, ISBN_13, ...).
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// Author returns the first listed author, or "" when none.
func (v VolumeInfo) Author() string {
	if len(v.Authors) == 0 {
		return ""
	}
	return v.Authors[0]
}

// ISBN returns the preferred external identifier: ISBN-13 when present,
// falling back to ISBN-10, then to the first identifier of any type.
func (v VolumeInfo) ISBN() string {
	var isbn10, other string
	for _, id := range v.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = id.Identifier
			}
		default:
			if other == "" {
				other = id.Identifier
			}
		}
	}
	if isbn10 != "" {
		return isbn10
	}
	return other
}

// CoverURL returns the thumbnail URL, falling back to the small
// thumbnail. The zoom parameter is rewritten for a higher quality image.
func (v VolumeInfo) CoverURL() string {
	coverURL := v.ImageLinks.Thumbnail
	if coverURL == "" {
		coverURL = v.ImageLinks.SmallThumbnail
	}
	if coverURL == "" {
		return ""
	}
	// zoom=0 serves a larger image than the default thumbnail
	return strings.Replace(coverURL, "zoom=1", "zoom=0", 1)
}
