package fileutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/lepinkainen/bookmatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "The Hobbit", "The Hobbit"},
		{"colon", "Harry Potter: The Philosopher's Stone", "Harry Potter - The Philosopher's Stone"},
		{"forward slash", "Fahrenheit 451/452", "Fahrenheit 451-452"},
		{"backslash", "a\\b", "a-b"},
		{"hebrew", "הארי פוטר", "הארי פוטר"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestGetMarkdownFilePath(t *testing.T) {
	path := GetMarkdownFilePath("Dune: Messiah", "/notes")
	assert.Equal(t, filepath.Join("/notes", "Dune - Messiah.md"), path)
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)

	assert.False(t, FileExists(env.Path("missing.md")))

	env.WriteFileString("present.md", "content")
	assert.True(t, FileExists(env.Path("present.md")))

	env.MkdirAll("somedir")
	assert.False(t, FileExists(env.Path("somedir")))
}

func TestWriteFileWithOverwrite(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("nested", "note.md")

	written, err := WriteFileWithOverwrite(path, []byte("first"), 0644, false)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "first", env.ReadFileString("nested/note.md"))

	// Existing file is skipped without overwrite
	written, err = WriteFileWithOverwrite(path, []byte("second"), 0644, false)
	require.NoError(t, err)
	assert.False(t, written)
	assert.Equal(t, "first", env.ReadFileString("nested/note.md"))

	written, err = WriteFileWithOverwrite(path, []byte("second"), 0644, true)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, "second", env.ReadFileString("nested/note.md"))
}

func TestWriteJSONFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	path := env.Path("out", "results.json")

	data := map[string]any{"title": "Dune", "confidence": 85}

	written, err := WriteJSONFile(data, path, false)
	require.NoError(t, err)
	assert.True(t, written)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(env.ReadFile("out/results.json"), &decoded))
	assert.Equal(t, "Dune", decoded["title"])

	// Skipped when file exists and overwrite is off
	written, err = WriteJSONFile(data, path, false)
	require.NoError(t, err)
	assert.False(t, written)
}
