package textmatch

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Distance returns the Levenshtein edit distance between a and b
// (insertion, deletion and substitution each cost 1). Inputs are
// compared as-is; callers wanting fuzzy matching should normalize first.
func Distance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Similarity returns a similarity score in [0, 1] between a and b.
// Both inputs are normalized before comparison, so punctuation, case
// and niqqud differences do not count against the score. Two strings
// that normalize to empty are considered identical (1.0).
func Similarity(a, b string) float64 {
	return similarityNormalized(Normalize(a), Normalize(b))
}

// similarityNormalized computes the Levenshtein similarity of two
// already-normalized strings: 1 - distance/len(longer).
func similarityNormalized(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := utf8.RuneCountInString(a)
	if l := utf8.RuneCountInString(b); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}
