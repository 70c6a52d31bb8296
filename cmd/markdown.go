package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lepinkainen/bookmatch/internal/config"
	"github.com/lepinkainen/bookmatch/internal/fileutil"
	"github.com/lepinkainen/bookmatch/internal/obsidian"
	"github.com/lepinkainen/bookmatch/internal/resolver"
)

func writeMatchNote(match *resolver.Match, directory string) error {
	filePath := fileutil.GetMarkdownFilePath(match.Title, directory)

	markdown, err := buildMatchNote(match)
	if err != nil {
		return fmt.Errorf("failed to build markdown: %w", err)
	}

	written, err := fileutil.WriteFileWithOverwrite(filePath, markdown, 0644, config.OverwriteFiles)
	if err != nil {
		return err
	}
	if !written {
		slog.Info("Note already exists, skipping", "path", filePath)
	}
	return nil
}

func buildMatchNote(match *resolver.Match) ([]byte, error) {
	fm := obsidian.NewFrontmatter()

	// Basic metadata
	fm.Set("title", fileutil.SanitizeFilename(match.Title))
	fm.Set("type", "book")
	fm.Set("author", match.Author)
	fm.Set("confidence", match.Confidence)

	if match.PublishYear != nil {
		fm.Set("year", *match.PublishYear)
	}
	if match.Publisher != nil {
		fm.Set("publisher", *match.Publisher)
	}
	if match.Pages != nil {
		fm.Set("pages", *match.Pages)
	}
	if match.ISBN != nil {
		fm.Set("isbn", *match.ISBN)
	}
	if match.Language != nil {
		fm.Set("language", *match.Language)
	}
	if match.CoverImageURL != nil {
		fm.Set("cover", *match.CoverImageURL)
	}

	// Collect tags using TagSet for deduplication and normalization
	tc := obsidian.NewTagSet()
	tc.Add("book")

	if match.Genre != nil {
		tc.AddFormat("genre/%s", *match.Genre)
	}
	if match.AgeRange != nil {
		tc.AddFormat("age/%s", *match.AgeRange)
	}
	if match.PublishYear != nil && *match.PublishYear > 0 {
		decade := (*match.PublishYear / 10) * 10
		tc.AddFormat("year/%ds", decade)
	}

	obsidian.ApplyTagSet(fm, tc)

	// Build body content
	var body strings.Builder

	if match.CoverImageURL != nil {
		fmt.Fprintf(&body, "![](%s)\n\n", *match.CoverImageURL)
	}

	if match.Description != nil {
		body.WriteString(*match.Description)
		body.WriteString("\n")
	}

	return obsidian.BuildNoteMarkdown(fm, body.String())
}
