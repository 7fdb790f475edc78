package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding for a set of variables.
type Format string

const (
	FormatEnv  Format = "env"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// envUnescaper undoes the escapes godotenv.Marshal adds for shell safety that the
// dotenv parser keeps literally. Escaped backslashes are matched first so "\\!"
// stays an escaped backslash followed by '!'.
var envUnescaper = strings.NewReplacer(
	`\\`, `\\`,
	`\!`, `!`,
	`\$`, `$`,
	"\\`", "`",
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatEnv, FormatJSON, FormatYAML}

// ParseFormat validates a format name. "yml" is accepted as yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatEnv, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want one of env, json, yaml)", s)
}

// Encode writes vars to w in the given format. Keys are sorted in every format.
func Encode(w io.Writer, format Format, vars map[string]string) error {
	switch format {
	case FormatEnv:
		out, err := godotenv.Marshal(vars)
		if err != nil {
			return fmt.Errorf("failed to marshal env: %w", err)
		}
		out = envUnescaper.Replace(out)
		if out != "" {
			out += "\n"
		}
		if _, err := io.WriteString(w, out); err != nil {
			return fmt.Errorf("failed to write env: %w", err)
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(vars); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(vars); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// WriteFile encodes vars to path, creating the parent directory if it doesn't exist.
func WriteFile(path string, format Format, vars map[string]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, format, vars); err != nil {
		return err
	}
	return f.Close()
}
