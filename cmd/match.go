package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lepinkainen/bookmatch/internal/config"
	"github.com/lepinkainen/bookmatch/internal/googlebooks"
	"github.com/lepinkainen/bookmatch/internal/resolver"
)

// MatchCmd represents the match command
type MatchCmd struct {
	Title  string `arg:"" help:"Book title to search for"`
	Author string `arg:"" optional:"" help:"Author name, if known"`

	JSON     bool   `help:"Print the match as JSON"`
	NotesDir string `help:"Write a markdown note for the match into this directory"`
}

func (m *MatchCmd) Run() error {
	res := resolver.New(newSearchClient())

	match := res.Resolve(context.Background(), m.Title, m.Author)
	if match == nil {
		slog.Info("No confident match found", "title", m.Title, "author", m.Author)
		return nil
	}

	if m.JSON {
		if err := printMatchJSON(os.Stdout, match); err != nil {
			return err
		}
	} else {
		printMatch(os.Stdout, match)
	}

	if m.NotesDir != "" {
		if err := writeMatchNote(match, m.NotesDir); err != nil {
			return fmt.Errorf("failed to write note: %w", err)
		}
	}

	return nil
}

// newSearchClient builds a Google Books client from the global configuration.
func newSearchClient() *googlebooks.Client {
	opts := []googlebooks.Option{}
	if len(config.PreferredLanguages) > 0 {
		opts = append(opts, googlebooks.WithLanguages(config.PreferredLanguages))
	}
	if config.GoogleBooksAPIKey != "" {
		opts = append(opts, googlebooks.WithAPIKey(config.GoogleBooksAPIKey))
	}
	return googlebooks.NewClient(opts...)
}

func printMatchJSON(w io.Writer, match *resolver.Match) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(match)
}

func printMatch(w io.Writer, match *resolver.Match) {
	fmt.Fprintf(w, "Title:      %s\n", match.Title)
	fmt.Fprintf(w, "Author:     %s\n", match.Author)
	if match.Publisher != nil {
		fmt.Fprintf(w, "Publisher:  %s\n", *match.Publisher)
	}
	if match.PublishYear != nil {
		fmt.Fprintf(w, "Year:       %d\n", *match.PublishYear)
	}
	if match.Pages != nil {
		fmt.Fprintf(w, "Pages:      %d\n", *match.Pages)
	}
	if match.ISBN != nil {
		fmt.Fprintf(w, "ISBN:       %s\n", *match.ISBN)
	}
	if match.Genre != nil {
		fmt.Fprintf(w, "Genre:      %s\n", *match.Genre)
	}
	if match.AgeRange != nil {
		fmt.Fprintf(w, "Age range:  %s\n", *match.AgeRange)
	}
	if match.Language != nil {
		fmt.Fprintf(w, "Language:   %s\n", *match.Language)
	}
	fmt.Fprintf(w, "Confidence: %d\n", match.Confidence)
}
