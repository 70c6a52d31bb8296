package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing markdown notes should be overwritten
	OverwriteFiles bool
	// GoogleBooksAPIKey is the optional API key for the Google Books API
	GoogleBooksAPIKey string
	// PreferredLanguages are the language codes searches are restricted to
	PreferredLanguages []string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("NotesOutputDir", "./notes/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("languages", []string{"he", "en"})

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	GoogleBooksAPIKey = viper.GetString("GoogleBooksAPIKey")
	PreferredLanguages = viper.GetStringSlice("languages")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}
