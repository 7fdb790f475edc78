package config

import (
	"os"
	"strings"

	"github.com/AD7six/dotenv/internal/dotenv"
	"github.com/AD7six/dotenv/internal/storage"
	"github.com/AD7six/dotenv/internal/utils"
)

// Settings contains the defaults for the dotenv CLI. Command-line flags override them.
type Settings struct {
	Path      string         // Directory holding the env file, defaults to "."
	Filename  string         // Env file name, defaults to ".env"
	Global    bool           // Export loaded values to the process environment, defaults to true
	Overwrite bool           // Replace variables that are already set, defaults to false
	Required  []string       // Variables that must be set after loading
	Format    storage.Format // Output format for export, defaults to env
	LogLevel  string         // debug, info, warn or error
}

// LoadSettings loads configuration from environment variables.
// Variables: DOTENV_PATH, DOTENV_FILENAME, DOTENV_GLOBAL, DOTENV_OVERWRITE,
// DOTENV_REQUIRED, DOTENV_FORMAT, LOG_LEVEL.
func LoadSettings() (*Settings, error) {
	format, err := storage.ParseFormat(getEnv("DOTENV_FORMAT", string(storage.FormatEnv)))
	if err != nil {
		return nil, err
	}

	return &Settings{
		Path:      getEnv("DOTENV_PATH", "."),
		Filename:  getEnv("DOTENV_FILENAME", dotenv.DefaultFilename),
		Global:    getEnvBool("DOTENV_GLOBAL", true),
		Overwrite: getEnvBool("DOTENV_OVERWRITE", false),
		Required:  utils.ParseCommaSeparated(getEnv("DOTENV_REQUIRED", "")),
		Format:    format,
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}, nil
}

// get the env variable with a default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// getEnvBool returns a boolean env var with support for common truthy/falsey strings, defaulting when unset/empty.
func getEnvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return def
	}
}
