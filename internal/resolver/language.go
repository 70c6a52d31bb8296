package resolver

import "github.com/lepinkainen/bookmatch/internal/textmatch"

// preferQueryAuthorSim is the author similarity at or above which the
// user's spelling of the author wins over the API's.
const preferQueryAuthorSim = 0.5

// resolveAuthor decides between the user's author string and the
// candidate's. Hebrew input is kept in Hebrew: a user cataloging in
// Hebrew should not have their author replaced by a Latin
// transliteration, and vice versa.
func resolveAuthor(queryAuthor, candAuthor string) string {
	queryHebrew := textmatch.ContainsHebrew(queryAuthor)
	candHebrew := textmatch.ContainsHebrew(candAuthor)

	switch {
	case queryHebrew && !candHebrew:
		return queryAuthor
	case candHebrew && !queryHebrew:
		return candAuthor
	}

	// Same script on both sides: keep the user's spelling when it
	// plausibly names the same person, otherwise trust the API.
	if textmatch.AuthorSimilarity(queryAuthor, candAuthor) >= preferQueryAuthorSim {
		return queryAuthor
	}
	return candAuthor
}

// resolveTitle decides between the user's title and the candidate's.
// A Hebrew query title always wins; otherwise the candidate's title is
// preferred when present.
func resolveTitle(queryTitle, candTitle string) string {
	if queryTitle != "" && textmatch.ContainsHebrew(queryTitle) {
		return queryTitle
	}
	if !textmatch.ContainsHebrew(queryTitle) && textmatch.ContainsHebrew(candTitle) {
		return candTitle
	}
	if candTitle != "" {
		return candTitle
	}
	return queryTitle
}
