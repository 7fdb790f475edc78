package dotenv

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AD7six/dotenv/internal/logging"
)

// maxLineSize bounds a single line of a .env file.
const maxLineSize = 1024 * 1024 // 1MB

// FileReader supplies the lines of a .env file.
type FileReader interface {
	// ReadLines returns the trimmed, non-blank lines of the file at path.
	// It fails with ErrFileUnreadable or ErrFileEmpty.
	ReadLines(path string) ([]string, error)
}

// OSFiles reads from the local filesystem.
type OSFiles struct{}

func (OSFiles) ReadLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrFileUnreadable, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileUnreadable, path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, err)
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFileEmpty, path)
	}
	return lines, nil
}

// LoadOptions controls LoadEnv and AddEnv.
type LoadOptions struct {
	Filename  string   // defaults to ".env"
	Overwrite bool     // replace keys that are already set
	Required  []string // keys that must be set once the file is applied
	Local     bool     // LoadEnv only: keep variables out of the Environment
}

// Load (re-)loads the store's configured file, overwriting existing keys.
func (s *Store) Load(required ...string) error {
	return s.LoadEnv(s.path, LoadOptions{
		Filename:  s.filename,
		Overwrite: true,
		Required:  required,
		Local:     !s.global,
	})
}

// LoadEnv reads filename from the directory path into the store. It resets the
// store's mode to global unless opts.Local is set. Entries applied before a
// required-variable failure stay set.
func (s *Store) LoadEnv(path string, opts LoadOptions) error {
	s.global = !opts.Local

	filename := opts.Filename
	if filename == "" {
		filename = DefaultFilename
	}
	file := filepath.Join(path, filename)

	logging.Logger.Debug("loading env file", "path", file, "global", s.global, "overwrite", opts.Overwrite)

	lines, err := s.files.ReadLines(file)
	if err != nil {
		return err
	}

	if err := s.LoadData(lines, opts.Overwrite); err != nil {
		return fmt.Errorf("failed to load %s: %w", file, err)
	}

	return s.CheckRequired(opts.Required)
}

// AddEnv merges another file into the store, keeping the current mode.
func (s *Store) AddEnv(path string, opts LoadOptions) error {
	opts.Local = !s.global
	return s.LoadEnv(path, opts)
}
