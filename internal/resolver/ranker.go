package resolver

import (
	"strings"
	"unicode/utf8"

	"github.com/lepinkainen/bookmatch/internal/googlebooks"
	"github.com/lepinkainen/bookmatch/internal/textmatch"
)

// Ranking rubric. Title and author tiers are exclusive (best applicable
// tier wins); the data-quality bonuses are additive on top.
const (
	titleExactScore    = 60
	titleContainsScore = 50
	titleHighSimScore  = 45
	titleMidSimScore   = 30
	titleLowSimScore   = 15

	authorHighSimScore = 30
	authorGoodSimScore = 25
	authorMidSimScore  = 15
	authorLowSimScore  = 5
	anyAuthorScore     = 5

	identifierScore  = 10
	coverScore       = 5
	descriptionScore = 5
	languageScore    = 3

	descriptionMinLength = 100
)

// rankCandidates scores every item in one API response against the
// query and returns the highest-scoring volume. Ties keep the first
// encountered. Returns nil for an empty list.
func rankCandidates(title, author string, items []googlebooks.Volume, preferredLangs []string) *googlebooks.VolumeInfo {
	var best *googlebooks.VolumeInfo
	bestScore := -1

	for i := range items {
		info := items[i].VolumeInfo
		score := scoreCandidate(title, author, info, preferredLangs)
		if score > bestScore {
			best = &items[i].VolumeInfo
			bestScore = score
		}
	}

	return best
}

func scoreCandidate(title, author string, info googlebooks.VolumeInfo, preferredLangs []string) int {
	score := 0

	normQuery := textmatch.Normalize(title)
	normCand := textmatch.Normalize(info.Title)

	switch {
	case normQuery != "" && normQuery == normCand:
		score += titleExactScore
	case bothContain(normQuery, normCand):
		score += titleContainsScore
	default:
		switch sim := textmatch.Similarity(title, info.Title); {
		case sim > 0.8:
			score += titleHighSimScore
		case sim > 0.6:
			score += titleMidSimScore
		case sim > 0.4:
			score += titleLowSimScore
		}
	}

	if author != "" {
		switch sim := textmatch.AuthorSimilarity(author, info.Author()); {
		case sim > 0.9:
			score += authorHighSimScore
		case sim > 0.7:
			score += authorGoodSimScore
		case sim > 0.5:
			score += authorMidSimScore
		case sim > 0.3:
			score += authorLowSimScore
		}
	} else if info.Author() != "" {
		score += anyAuthorScore
	}

	if len(info.IndustryIdentifiers) > 0 {
		score += identifierScore
	}
	if info.CoverURL() != "" {
		score += coverScore
	}
	if utf8.RuneCountInString(info.Description) > descriptionMinLength {
		score += descriptionScore
	}
	if languagePreferred(info.Language, preferredLangs) {
		score += languageScore
	}

	return score
}

// bothContain reports whether one non-empty normalized string contains
// the other.
func bothContain(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func languagePreferred(lang string, preferred []string) bool {
	if lang == "" {
		return false
	}
	for _, p := range preferred {
		if strings.EqualFold(lang, p) {
			return true
		}
	}
	return false
}
