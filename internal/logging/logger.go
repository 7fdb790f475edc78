package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is the global logger instance used throughout the application.
var Logger *slog.Logger

func init() {
	InitLogger("")
}

// InitLogger replaces the global logger, writing to stderr.
// An empty logLevel falls back to LOG_LEVEL, then to info.
func InitLogger(logLevel string) {
	Logger = New(logLevel, os.Stderr)
}

// New returns a text logger writing to w. Unknown levels log at info.
func New(logLevel string, w io.Writer) *slog.Logger {
	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}

	level, err := ParseLevel(logLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels. An empty string is info.
func ParseLevel(logLevel string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(logLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", logLevel)
}
