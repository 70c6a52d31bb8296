package resolver

import (
	"github.com/lepinkainen/bookmatch/internal/googlebooks"
	"github.com/lepinkainen/bookmatch/internal/textmatch"
)

// Confidence weights. Deliberately independent from the ranking rubric:
// ranking picks the best candidate within one response, confidence
// estimates how trustworthy that pick is in absolute terms.
const (
	confTitleExact    = 50
	confTitleContains = 35
	confTitleSimScale = 30

	confAuthorExact    = 30
	confAuthorContains = 20
	confAuthorSimScale = 15
	confNoQueryAuthor  = 15

	confIdentifierBonus  = 10
	confCoverBonus       = 5
	confDescriptionBonus = 5
)

// confidenceScore computes the 0-100 confidence estimate for the chosen
// candidate, clamped to [0, 100].
func confidenceScore(title, author string, info googlebooks.VolumeInfo) int {
	score := 0

	normQuery := textmatch.Normalize(title)
	normCand := textmatch.Normalize(info.Title)
	switch {
	case normQuery != "" && normQuery == normCand:
		score += confTitleExact
	case bothContain(normQuery, normCand):
		score += confTitleContains
	default:
		score += int(textmatch.Similarity(title, info.Title) * confTitleSimScale)
	}

	if author != "" {
		normAuthor := textmatch.Normalize(author)
		normCandAuthor := textmatch.Normalize(info.Author())
		switch {
		case normAuthor != "" && normAuthor == normCandAuthor:
			score += confAuthorExact
		case bothContain(normAuthor, normCandAuthor):
			score += confAuthorContains
		default:
			score += int(textmatch.AuthorSimilarity(author, info.Author()) * confAuthorSimScale)
		}
	} else {
		score += confNoQueryAuthor
	}

	if len(info.IndustryIdentifiers) > 0 {
		score += confIdentifierBonus
	}
	if info.CoverURL() != "" {
		score += confCoverBonus
	}
	if info.Description != "" {
		score += confDescriptionBonus
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
