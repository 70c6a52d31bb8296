package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/bookmatch/internal/config"
	"github.com/lepinkainen/bookmatch/internal/csvutil"
	"github.com/lepinkainen/bookmatch/internal/fileutil"
	"github.com/lepinkainen/bookmatch/internal/resolver"
	"github.com/spf13/viper"
)

// BatchCmd represents the batch command
type BatchCmd struct {
	Input      string `short:"f" help:"Path to CSV file with title,author rows" required:""`
	NotesDir   string `short:"o" help:"Directory to write markdown notes into (defaults to NotesOutputDir)"`
	JSONOutput string `help:"Path to JSON output file for all results"`
}

// bookQuery is one row of the batch input file.
type bookQuery struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// batchResult pairs a query with its resolved match, nil when nothing was accepted.
type batchResult struct {
	Query bookQuery       `json:"query"`
	Match *resolver.Match `json:"match"`
}

func (b *BatchCmd) Run() error {
	queries, err := csvutil.ProcessCSV(b.Input, parseQueryRecord, csvutil.ProcessorOptions{SkipInvalid: true})
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	notesDir := b.NotesDir
	if notesDir == "" {
		notesDir = viper.GetString("NotesOutputDir")
	}

	res := resolver.New(newSearchClient())
	ctx := context.Background()

	results := make([]batchResult, 0, len(queries))
	matched := 0

	for _, q := range queries {
		match := res.Resolve(ctx, q.Title, q.Author)
		results = append(results, batchResult{Query: q, Match: match})

		if match == nil {
			slog.Warn("No confident match found", "title", q.Title, "author", q.Author)
			continue
		}
		matched++

		if err := writeMatchNote(match, notesDir); err != nil {
			slog.Error("Failed to write note", "title", match.Title, "error", err)
		}
	}

	if b.JSONOutput != "" {
		if _, err := fileutil.WriteJSONFile(results, b.JSONOutput, config.OverwriteFiles); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
	}

	slog.Info("Batch complete", "queries", len(queries), "matched", matched)
	return nil
}

// parseQueryRecord converts a CSV record to a query. The author column is optional.
func parseQueryRecord(record []string) (bookQuery, error) {
	if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
		return bookQuery{}, fmt.Errorf("missing title column")
	}

	q := bookQuery{Title: strings.TrimSpace(record[0])}
	if len(record) > 1 {
		q.Author = strings.TrimSpace(record[1])
	}
	return q, nil
}
