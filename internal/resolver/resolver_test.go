package resolver

import (
	"context"
	"strings"
	"testing"

	errs "github.com/lepinkainen/bookmatch/internal/errors"
	"github.com/lepinkainen/bookmatch/internal/googlebooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchCall struct {
	title  string
	author string
}

// fakeSearcher returns canned responses keyed by "title|author" and
// records every call for short-circuit assertions.
type fakeSearcher struct {
	responses map[string]*googlebooks.VolumesResponse
	errors    map[string]error
	calls     []searchCall
}

func (f *fakeSearcher) Search(_ context.Context, title, author string) (*googlebooks.VolumesResponse, error) {
	f.calls = append(f.calls, searchCall{title: title, author: author})
	key := title + "|" + author
	if err, ok := f.errors[key]; ok {
		return nil, err
	}
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return nil, errs.ErrNoResults
}

func (f *fakeSearcher) Languages() []string {
	return []string{"he", "en"}
}

func volumes(infos ...googlebooks.VolumeInfo) *googlebooks.VolumesResponse {
	resp := &googlebooks.VolumesResponse{TotalItems: len(infos)}
	for _, info := range infos {
		resp.Items = append(resp.Items, googlebooks.Volume{VolumeInfo: info})
	}
	return resp
}

func harryPotterVolume() googlebooks.VolumeInfo {
	return googlebooks.VolumeInfo{
		Title:         "Harry Potter and the Philosopher's Stone",
		Authors:       []string{"J.K. Rowling"},
		Publisher:     "Bloomsbury",
		PublishedDate: "1997-06-26",
		PageCount:     223,
		Description:   strings.Repeat("A young wizard discovers his heritage. ", 5),
		Categories:    []string{"Juvenile Fiction / Fantasy"},
		Language:      "en",
		ImageLinks: googlebooks.ImageLinks{
			Thumbnail: "http://books.example/hp?zoom=1",
		},
		IndustryIdentifiers: []googlebooks.IndustryIdentifier{
			{Type: "ISBN_13", Identifier: "9780747532699"},
		},
	}
}

func TestResolveAcceptsFirstStrategy(t *testing.T) {
	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"Harry Potter and the Philosopher's Stone|J.K. Rowling": volumes(harryPotterVolume()),
		},
	}

	match := New(fake).Resolve(context.Background(), "Harry Potter and the Philosopher's Stone", "J.K. Rowling")
	require.NotNil(t, match)

	assert.GreaterOrEqual(t, match.Confidence, 40)
	require.NotNil(t, match.ISBN)
	assert.Equal(t, "9780747532699", *match.ISBN)
	require.NotNil(t, match.CoverImageURL)
	assert.Equal(t, "http://books.example/hp?zoom=0", *match.CoverImageURL)
	require.NotNil(t, match.PublishYear)
	assert.Equal(t, 1997, *match.PublishYear)
	require.NotNil(t, match.Pages)
	assert.Equal(t, 223, *match.Pages)

	// Accepted at strategy 1: later strategies never run.
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "J.K. Rowling", fake.calls[0].author)
}

func TestResolveShortCircuitSkipsBroadTitle(t *testing.T) {
	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"Harry Potter and the Philosopher's Stone|J.K. Rowling": volumes(harryPotterVolume()),
		},
	}

	match := New(fake).Resolve(context.Background(), "Harry Potter and the Philosopher's Stone", "J.K. Rowling")
	require.NotNil(t, match)

	for _, call := range fake.calls {
		assert.NotEqual(t, "Harry Potter and", call.title,
			"broad-title strategy must not run after an accepted match")
	}
	assert.Len(t, fake.calls, 1)
}

func TestResolveTitleOnlyWithMatchingAuthor(t *testing.T) {
	vol := harryPotterVolume()
	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			// title+author finds nothing, title-only does
			"Harry Potter|": volumes(vol),
		},
	}

	match := New(fake).Resolve(context.Background(), "Harry Potter", "Rowling")
	require.NotNil(t, match)
	// strategy 1 (with author), then strategy 2 (without)
	require.Len(t, fake.calls, 2)
	assert.Equal(t, "", fake.calls[1].author)
}

func TestResolveTitleOnlyRejectsAuthorMismatch(t *testing.T) {
	vol := googlebooks.VolumeInfo{
		Title:   "The Trial",
		Authors: []string{"Franz Kafka"},
	}
	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"The Trial|": volumes(vol),
		},
	}

	// Candidate author shares nothing with the queried one and the bare
	// candidate confidence stays below 70, so the result is rejected.
	match := New(fake).Resolve(context.Background(), "The Trial", "Totally Different Person")
	assert.Nil(t, match)
}

func TestResolveNoAuthorAcceptsTitleOnly(t *testing.T) {
	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"The Hobbit|": volumes(googlebooks.VolumeInfo{
				Title:   "The Hobbit",
				Authors: []string{"J.R.R. Tolkien"},
			}),
		},
	}

	match := New(fake).Resolve(context.Background(), "The Hobbit", "")
	require.NotNil(t, match)
	assert.Equal(t, "J.R.R. Tolkien", match.Author)
	// no author given: title+author strategy is skipped entirely
	require.Len(t, fake.calls, 1)
}

func TestResolveBroadTitleAccepted(t *testing.T) {
	full := "the quick brown fox jumps over the lazy dog"
	// Candidate keeps ~70% of the full title: similarity 30/43 > 0.6.
	candidate := "the quick brown fox jumps over"

	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"the quick brown|": volumes(googlebooks.VolumeInfo{Title: candidate}),
		},
	}

	match := New(fake).Resolve(context.Background(), full, "")
	require.NotNil(t, match)
	assert.Equal(t, candidate, match.Title)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, full, fake.calls[0].title)
	assert.Equal(t, "the quick brown", fake.calls[1].title)
}

func TestResolveBroadTitleRejected(t *testing.T) {
	full := "the quick brown fox jumps over the lazy dog"
	// Candidate keeps under half of the full title: similarity 19/43 < 0.6.
	candidate := "the quick brown fox"

	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"the quick brown|": volumes(googlebooks.VolumeInfo{Title: candidate}),
		},
	}

	match := New(fake).Resolve(context.Background(), full, "")
	assert.Nil(t, match)
	require.Len(t, fake.calls, 2)
}

func TestResolveShortTitleSkipsBroadStrategy(t *testing.T) {
	fake := &fakeSearcher{}

	match := New(fake).Resolve(context.Background(), "Dune", "")
	assert.Nil(t, match)
	// only title-only runs: 4 runes is under the broad-title minimum
	assert.Len(t, fake.calls, 1)
}

func TestResolveAbsorbsAPIFailures(t *testing.T) {
	full := "the quick brown fox jumps over the lazy dog"
	fake := &fakeSearcher{
		errors: map[string]error{
			full + "|someone":  errs.NewStatusError(503, "unavailable"),
			full + "|":         errs.NewStatusError(503, "unavailable"),
			"the quick brown|": errs.NewStatusError(503, "unavailable"),
		},
	}

	assert.NotPanics(t, func() {
		match := New(fake).Resolve(context.Background(), full, "someone")
		assert.Nil(t, match)
	})
	// every strategy was tried despite the failures
	assert.Len(t, fake.calls, 3)
}

func TestResolveEmptyTitle(t *testing.T) {
	fake := &fakeSearcher{}
	assert.Nil(t, New(fake).Resolve(context.Background(), "   ", "author"))
	assert.Empty(t, fake.calls)
}

func TestResolveHebrewAuthorPreserved(t *testing.T) {
	// Hebrew edition in the API, but the author field is the Latin original.
	vol := harryPotterVolume()
	vol.Title = "הארי פוטר ואבן החכמים"
	vol.Language = "he"
	fake := &fakeSearcher{
		responses: map[string]*googlebooks.VolumesResponse{
			"הארי פוטר ואבן החכמים|ג'יי קיי רולינג": volumes(vol),
		},
	}

	match := New(fake).Resolve(context.Background(), "הארי פוטר ואבן החכמים", "ג'יי קיי רולינג")
	require.NotNil(t, match)
	assert.Equal(t, "ג'יי קיי רולינג", match.Author,
		"Hebrew query author must win over the Latin API author")
	assert.Equal(t, "הארי פוטר ואבן החכמים", match.Title,
		"Hebrew query title must be kept")
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "one two three", truncateTitle("one two three four five", 3))
	assert.Equal(t, "one two", truncateTitle("one two", 3))
	assert.Equal(t, "one two three", truncateTitle("  one   two  three ", 3))
}

func TestPublishYear(t *testing.T) {
	tests := []struct {
		input    string
		expected *int
	}{
		{"1997-06-26", intPtr(1997)},
		{"1997", intPtr(1997)},
		{"c2005", intPtr(2005)},
		{"n.d.", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got := publishYear(tt.input)
		if tt.expected == nil {
			assert.Nil(t, got, "publishYear(%q)", tt.input)
		} else {
			require.NotNil(t, got, "publishYear(%q)", tt.input)
			assert.Equal(t, *tt.expected, *got)
		}
	}
}

func intPtr(n int) *int { return &n }
