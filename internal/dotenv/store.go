package dotenv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AD7six/dotenv/internal/logging"
)

// DefaultFilename is used when no filename is given.
const DefaultFilename = ".env"

// Store holds resolved variables in two tiers. The local tier is private to the
// Store and always written. In global mode writes also go to the Environment
// and reads prefer it.
type Store struct {
	path     string
	filename string
	global   bool
	env      Environment
	files    FileReader
	local    map[string]string
}

// Option configures a Store.
type Option func(*Store)

// WithFilename sets the file read by Load. Defaults to ".env".
func WithFilename(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.filename = name
		}
	}
}

// WithGlobal selects between global mode (the default) and local-only mode.
func WithGlobal(global bool) Option {
	return func(s *Store) { s.global = global }
}

// WithEnvironment replaces the process environment as the global tier.
func WithEnvironment(env Environment) Option {
	return func(s *Store) { s.env = env }
}

// WithFileReader replaces the filesystem used to read .env files.
func WithFileReader(r FileReader) Option {
	return func(s *Store) { s.files = r }
}

// New creates a Store for the .env file in the directory path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:     path,
		filename: DefaultFilename,
		global:   true,
		env:      OSEnvironment{},
		files:    OSFiles{},
		local:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Global reports whether the store currently writes to its Environment.
func (s *Store) Global() bool {
	return s.global
}

// Get returns the value of key, matched case-insensitively. An explicitly set
// empty value is reported as present.
func (s *Store) Get(key string) (string, bool) {
	key = strings.ToUpper(key)

	if s.global {
		if v, ok := s.env.Lookup(key); ok {
			return v, true
		}
	}

	v, ok := s.local[key]
	return v, ok
}

// Set resolves value and stores it under the upper-cased key. ${NAME}
// references in value are looked up with Get, so they see everything set so far.
func (s *Store) Set(key, value string) error {
	key = strings.ToUpper(key)
	value = ResolveValue(value, s.Get)

	if s.global {
		if err := s.env.Set(key, value); err != nil {
			return err
		}
	}

	s.local[key] = value
	return nil
}

// IsSet reports whether key is present, including when its value is empty.
func (s *Store) IsSet(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Unset removes key from every tier the store writes to.
func (s *Store) Unset(key string) error {
	key = strings.ToUpper(key)

	if s.global {
		if err := s.env.Unset(key); err != nil {
			return err
		}
	}

	delete(s.local, key)
	return nil
}

// Clear empties the local tier and, in global mode, the global tier.
func (s *Store) Clear() error {
	if s.global {
		if err := s.env.Clear(); err != nil {
			return err
		}
	}

	s.local = make(map[string]string)
	return nil
}

// LoadData parses lines and sets each accepted entry. Malformed lines are
// skipped. Keys that are already present are kept unless overwrite is true.
func (s *Store) LoadData(lines []string, overwrite bool) error {
	for i, line := range lines {
		entry, ok := ParseLine(line)
		if !ok {
			if trimmed := strings.TrimSpace(line); trimmed != "" && trimmed[0] != '#' {
				key, _, _ := strings.Cut(trimmed, "=")
				logging.Logger.Debug("skipping invalid line", "line", i+1, "reason", invalidKeyReason(strings.TrimSpace(key)))
			}
			continue
		}

		if !overwrite && s.IsSet(entry.Key) {
			logging.Logger.Debug("keeping existing value", "key", strings.ToUpper(entry.Key))
			continue
		}

		if err := s.Set(entry.Key, entry.Value); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// CheckRequired returns a *MissingRequiredError naming every key in required
// that is not set. Names are matched case-insensitively.
func (s *Store) CheckRequired(required []string) error {
	var missing []string
	for _, key := range required {
		if !s.IsSet(key) {
			missing = append(missing, strings.ToUpper(key))
		}
	}

	if len(missing) > 0 {
		return &MissingRequiredError{Keys: missing}
	}
	return nil
}

// Keys returns the keys of the local tier in sorted order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.local))
	for k := range s.local {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns the effective value of every key known to the local tier.
func (s *Store) Environ() map[string]string {
	vars := make(map[string]string, len(s.local))
	for _, k := range s.Keys() {
		vars[k], _ = s.Get(k)
	}
	return vars
}
