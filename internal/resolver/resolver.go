// Package resolver turns a noisy book reference (title + optional
// author, Hebrew or English) into a best-guess bibliographic record
// with a confidence score. It tries a fixed sequence of query
// strategies against Google Books, ranks the candidates of each
// response, and stops at the first strategy whose best candidate
// clears its acceptance threshold.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	errs "github.com/lepinkainen/bookmatch/internal/errors"
	"github.com/lepinkainen/bookmatch/internal/googlebooks"
	"github.com/lepinkainen/bookmatch/internal/textmatch"
)

// Acceptance thresholds. The values come from empirical tuning of the
// original scoring rubric; they are named here so they live in one
// place, not re-derived.
const (
	acceptTitleAuthorConfidence = 40
	acceptTitleOnlyConfidence   = 70
	acceptTitleOnlyAuthorSim    = 0.3
	acceptBroadTitleSim         = 0.6

	broadTitleMinLength = 10
	broadTitleTokens    = 3
)

// Strategy names, tried strictly in this order.
const (
	strategyTitleAuthor = "title+author"
	strategyTitleOnly   = "title-only"
	strategyBroadTitle  = "broad-title"
)

// Match is the resolved bibliographic record. Pointer fields are
// nil when the chosen candidate had no data for them.
type Match struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Publisher     *string `json:"publisher"`
	PublishYear   *int    `json:"publish_year"`
	Pages         *int    `json:"pages"`
	Description   *string `json:"description"`
	CoverImageURL *string `json:"cover_image_url"`
	ISBN          *string `json:"isbn"`
	Genre         *string `json:"genre"`
	AgeRange      *string `json:"age_range"`
	Language      *string `json:"language"`
	Confidence    int     `json:"confidence"`
}

// Searcher is the slice of the Google Books client the resolver needs.
type Searcher interface {
	Search(ctx context.Context, title, author string) (*googlebooks.VolumesResponse, error)
	Languages() []string
}

// Resolver sequences the query strategies. It holds no mutable state
// across calls, so a single Resolver is safe for concurrent use.
type Resolver struct {
	client Searcher
}

// New creates a Resolver backed by the given search client.
func New(client Searcher) *Resolver {
	return &Resolver{client: client}
}

// candidate is the best-ranked volume of one strategy execution.
type candidate struct {
	info       googlebooks.VolumeInfo
	confidence int
}

// Resolve returns the best-guess record for the given reference, or
// nil when no sufficiently confident match was found. It never fails
// for ordinary "not found" conditions: API and network faults are
// logged and absorbed, surfacing only as a nil result.
func (r *Resolver) Resolve(ctx context.Context, title, author string) *Match {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return nil
	}

	if author != "" {
		if cand := r.runStrategy(ctx, strategyTitleAuthor, title, author); cand != nil {
			if cand.confidence >= acceptTitleAuthorConfidence {
				return r.accept(strategyTitleAuthor, title, author, cand)
			}
			slog.Debug("Strategy result below threshold",
				"strategy", strategyTitleAuthor, "confidence", cand.confidence)
		}
	}

	if cand := r.runStrategy(ctx, strategyTitleOnly, title, ""); cand != nil {
		if author == "" {
			return r.accept(strategyTitleOnly, title, author, cand)
		}
		authorSim := textmatch.AuthorSimilarity(cand.info.Author(), author)
		if authorSim > acceptTitleOnlyAuthorSim || cand.confidence >= acceptTitleOnlyConfidence {
			return r.accept(strategyTitleOnly, title, author, cand)
		}
		slog.Debug("Title-only candidate author mismatch",
			"strategy", strategyTitleOnly, "author_similarity", authorSim,
			"confidence", cand.confidence)
	} else if utf8.RuneCountInString(title) > broadTitleMinLength {
		short := truncateTitle(title, broadTitleTokens)
		if cand := r.runStrategy(ctx, strategyBroadTitle, short, ""); cand != nil {
			if textmatch.Similarity(title, cand.info.Title) > acceptBroadTitleSim {
				return r.accept(strategyBroadTitle, title, author, cand)
			}
			slog.Debug("Broad-title candidate too far from full title",
				"strategy", strategyBroadTitle, "candidate_title", cand.info.Title)
		}
	}

	slog.Info("No confident match found", "title", title, "author", author)
	return nil
}

// runStrategy executes one search strategy and returns its best-ranked
// candidate with an independent confidence score, or nil when the
// strategy produced nothing.
func (r *Resolver) runStrategy(ctx context.Context, name, title, author string) *candidate {
	resp, err := r.client.Search(ctx, title, author)
	if err != nil {
		if errors.Is(err, errs.ErrNoResults) {
			slog.Debug("Strategy returned no results", "strategy", name, "title", title)
		} else {
			slog.Warn("Strategy search failed", "strategy", name, "title", title, "error", err)
		}
		return nil
	}

	best := rankCandidates(title, author, resp.Items, r.client.Languages())
	if best == nil {
		return nil
	}

	return &candidate{
		info:       *best,
		confidence: confidenceScore(title, author, *best),
	}
}

func (r *Resolver) accept(strategy, title, author string, cand *candidate) *Match {
	slog.Info("Match accepted",
		"strategy", strategy, "title", cand.info.Title, "confidence", cand.confidence)
	return r.buildMatch(title, author, cand)
}

// buildMatch assembles the final record from the accepted candidate,
// resolving the bilingual title/author preference field by field.
func (r *Resolver) buildMatch(queryTitle, queryAuthor string, cand *candidate) *Match {
	info := cand.info

	return &Match{
		Title:         resolveTitle(queryTitle, info.Title),
		Author:        resolveAuthor(queryAuthor, info.Author()),
		Publisher:     optional(info.Publisher),
		PublishYear:   publishYear(info.PublishedDate),
		Pages:         optionalInt(info.PageCount),
		Description:   optional(info.Description),
		CoverImageURL: optional(info.CoverURL()),
		ISBN:          optional(info.ISBN()),
		Genre:         mapGenre(info.Categories),
		AgeRange:      inferAgeRange(info),
		Language:      optional(info.Language),
		Confidence:    cand.confidence,
	}
}

// truncateTitle keeps the first n whitespace-separated tokens.
func truncateTitle(title string, n int) string {
	fields := strings.Fields(title)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// publishYear extracts the first four-digit run from a published date
// string ("1997-06-26", "1997", "c1997").
func publishYear(publishedDate string) *int {
	match := yearPattern.FindString(publishedDate)
	if match == "" {
		return nil
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &year
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
