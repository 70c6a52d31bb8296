package textmatch

import "strings"

// Tiered scores for author name comparison. Person names need looser
// matching than titles: "J.K. Rowling" vs "Rowling, J. K." or a Hebrew
// transliteration should still register as the same person.
const (
	authorExactScore     = 1.0
	authorSurnameScore   = 0.9
	authorContainsScore  = 0.85
	authorSurnameFuzzy   = 0.8
	authorTokenBaseScore = 0.6
	authorTokenStep      = 0.15

	surnameSimilarityThreshold = 0.8
	tokenSimilarityThreshold   = 0.85
)

// AuthorSimilarity returns a similarity score in [0, 1] specialized for
// person names. The comparison is layered, returning the first
// applicable tier:
//
//  1. normalized names equal
//  2. one name contains the other
//  3. surnames (final tokens) equal
//  4. surnames highly similar
//  5. per-token matching, ignoring single-letter initials
//  6. plain string similarity of the full names
//
// Empty input on either side yields 0.
func AuthorSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" || nb == "" {
		return 0
	}

	if na == nb {
		return authorExactScore
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return authorContainsScore
	}

	tokensA := strings.Fields(na)
	tokensB := strings.Fields(nb)

	surnameA := tokensA[len(tokensA)-1]
	surnameB := tokensB[len(tokensB)-1]
	if surnameA == surnameB {
		return authorSurnameScore
	}
	if similarityNormalized(surnameA, surnameB) > surnameSimilarityThreshold {
		return authorSurnameFuzzy
	}

	// Token-level pass: count name parts (skipping initials) that match
	// exactly or near-exactly between the two names.
	matches := 0
	for _, ta := range tokensA {
		if len([]rune(ta)) <= 1 {
			continue
		}
		for _, tb := range tokensB {
			if len([]rune(tb)) <= 1 {
				continue
			}
			if ta == tb || similarityNormalized(ta, tb) > tokenSimilarityThreshold {
				matches++
				break
			}
		}
	}
	if matches > 0 {
		score := authorTokenBaseScore + authorTokenStep*float64(matches)
		if score > 1.0 {
			score = 1.0
		}
		return score
	}

	return similarityNormalized(na, nb)
}
