package testutil

import (
	"path/filepath"
	"testing"

	"github.com/lepinkainen/bookmatch/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("subdir", "file.txt")
	assert.True(t, filepath.IsAbs(path))
	assert.Contains(t, path, "subdir")
	assert.Contains(t, path, "file.txt")
}

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	content := []byte("test content")
	env.WriteFile("test.txt", content)

	read := env.ReadFile("test.txt")
	assert.Equal(t, content, read)
}

func TestTestEnv_WriteReadFileString(t *testing.T) {
	env := NewTestEnv(t)

	content := "test string content"
	env.WriteFileString("test.txt", content)

	read := env.ReadFileString("test.txt")
	assert.Equal(t, content, read)
}

func TestTestEnv_WriteFileCreatesParents(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("a/b/c/file.txt", "nested")
	env.RequireFileExists("a/b/c/file.txt")
}

func TestTestEnv_FileExists(t *testing.T) {
	env := NewTestEnv(t)

	assert.False(t, env.FileExists("missing.txt"))

	env.WriteFileString("present.txt", "data")
	assert.True(t, env.FileExists("present.txt"))
}

func TestTestEnv_MkdirAll(t *testing.T) {
	env := NewTestEnv(t)

	env.MkdirAll("nested/dirs/here")
	assert.True(t, env.FileExists("nested/dirs/here"))
}

func TestTestEnv_AssertFileContains(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("note.md", "# Title\nsome body text\n")
	env.AssertFileContains("note.md", "body text")
}

func TestSaveRestoreConfigState(t *testing.T) {
	original := SaveConfigState()
	defer RestoreConfigState(original)

	config.OverwriteFiles = true
	config.GoogleBooksAPIKey = "saved-key"
	config.PreferredLanguages = []string{"en"}

	state := SaveConfigState()

	config.OverwriteFiles = false
	config.GoogleBooksAPIKey = "other"
	config.PreferredLanguages = nil

	RestoreConfigState(state)

	assert.True(t, config.OverwriteFiles)
	assert.Equal(t, "saved-key", config.GoogleBooksAPIKey)
	assert.Equal(t, []string{"en"}, config.PreferredLanguages)
}

func TestSetTestConfig(t *testing.T) {
	SetTestConfig(t)

	assert.True(t, config.OverwriteFiles)
	assert.Empty(t, config.GoogleBooksAPIKey)
	assert.Equal(t, []string{"he", "en"}, config.PreferredLanguages)
}

func TestSetupTestCache(t *testing.T) {
	ResetConfig(t)
	env := NewTestEnv(t)

	cacheDir := SetupTestCache(t, env)

	assert.True(t, env.FileExists("cache"))
	assert.Equal(t, env.Path("cache"), cacheDir)
	assert.Equal(t, env.Path("cache", "test-cache.db"), viper.GetString("cache.dbfile"))
	assert.Equal(t, "24h", viper.GetString("cache.ttl"))
}
