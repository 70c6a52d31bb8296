package resolver

import (
	"strings"

	"github.com/lepinkainen/bookmatch/internal/googlebooks"
)

// Age range tags.
const (
	ageRangeChildren = "children"
	ageRangeTeen     = "teen"
	ageRangeAdult    = "adult"
)

// genreMapping is one (matchKey, tag) pair of the genre vocabulary.
type genreMapping struct {
	match string
	tag   string
}

// genreTable maps free-text category strings to the fixed genre
// vocabulary. Consulted in order by substring scan, so more specific
// keys must come before keys they contain ("young adult" before
// "fiction", "nonfiction" before "fiction").
var genreTable = []genreMapping{
	{"young adult", "teen-fiction"},
	{"juvenile fiction", "children-fiction"},
	{"juvenile nonfiction", "children-nonfiction"},
	{"science fiction", "science-fiction"},
	{"fantasy", "fantasy"},
	{"graphic novel", "comics"},
	{"comics", "comics"},
	{"detective", "mystery"},
	{"mystery", "mystery"},
	{"thriller", "thriller"},
	{"suspense", "thriller"},
	{"horror", "horror"},
	{"romance", "romance"},
	{"poetry", "poetry"},
	{"drama", "drama"},
	{"biography", "biography"},
	{"autobiography", "biography"},
	{"history", "history"},
	{"philosophy", "philosophy"},
	{"psychology", "psychology"},
	{"religion", "religion"},
	{"self-help", "self-help"},
	{"business", "business"},
	{"cooking", "cooking"},
	{"humor", "humor"},
	{"education", "education"},
	{"nonfiction", "nonfiction"},
	{"fiction", "fiction"},
}

// mapGenre maps the candidate's first category string to the genre
// vocabulary. Unrecognized categories map to nil.
func mapGenre(categories []string) *string {
	if len(categories) == 0 {
		return nil
	}

	category := strings.ToLower(categories[0])
	for _, m := range genreTable {
		if strings.Contains(category, m.match) {
			tag := m.tag
			return &tag
		}
	}
	return nil
}

// Keyword lists for age inference when the category and maturity
// signals are absent. Bilingual: callers catalog in Hebrew and English.
var (
	childrenKeywords = []string{
		"children", "for kids", "picture book", "read aloud",
		"ילדים", "לילדים", "פעוטות", "לגיל הרך",
	}
	teenKeywords = []string{
		"young adult", "teenager", "for teens",
		"נוער", "בני נוער", "למתבגרים",
	}
)

// inferAgeRange derives an age-range tag for the candidate: explicit
// juvenile/young-adult categories first, then the maturity rating, then
// a bilingual keyword scan over title and description. nil when nothing
// signals an audience.
func inferAgeRange(info googlebooks.VolumeInfo) *string {
	for _, category := range info.Categories {
		c := strings.ToLower(category)
		if strings.Contains(c, "juvenile") || strings.Contains(c, "children") {
			return tagPtr(ageRangeChildren)
		}
		if strings.Contains(c, "young adult") {
			return tagPtr(ageRangeTeen)
		}
	}

	if info.MaturityRating == "MATURE" {
		return tagPtr(ageRangeAdult)
	}

	text := strings.ToLower(info.Title + " " + info.Description)
	for _, kw := range childrenKeywords {
		if strings.Contains(text, kw) {
			return tagPtr(ageRangeChildren)
		}
	}
	for _, kw := range teenKeywords {
		if strings.Contains(text, kw) {
			return tagPtr(ageRangeTeen)
		}
	}

	return nil
}

func tagPtr(tag string) *string {
	return &tag
}
