package vars

import (
	"fmt"
	"path/filepath"

	"github.com/AD7six/dotenv/internal/config"
	"github.com/AD7six/dotenv/internal/dotenv"
	"github.com/AD7six/dotenv/internal/logging"
	"github.com/AD7six/dotenv/internal/utils"
	"github.com/spf13/pflag"
)

// Options carries the effective settings plus the flags shared by every
// command that loads variables.
type Options struct {
	Settings *config.Settings
	Add      []string // extra env files merged after the main one
	Set      []string // KEY=VALUE assignments applied after loading
	Unset    []string // keys removed after loading
}

// AddFlags registers --add, --set and --unset on fs.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringArrayVar(&o.Add, "add", nil, "Additional env file to merge (repeatable)")
	fs.StringArrayVar(&o.Set, "set", nil, "KEY=VALUE to set after loading, ${VAR} references are resolved (repeatable)")
	fs.StringArrayVar(&o.Unset, "unset", nil, "Variable to remove after loading (repeatable)")
}

// Open loads the configured env file, merges any --add files, applies --set
// and --unset, then checks the required variables.
func (o *Options) Open() (*dotenv.Store, error) {
	s := o.Settings
	store := dotenv.New(s.Path, dotenv.WithFilename(s.Filename), dotenv.WithGlobal(s.Global))

	err := store.LoadEnv(s.Path, dotenv.LoadOptions{
		Filename:  s.Filename,
		Overwrite: s.Overwrite,
		Local:     !s.Global,
	})
	if err != nil {
		return nil, err
	}

	for _, file := range o.Add {
		dir, name := filepath.Split(file)
		if dir == "" {
			dir = "."
		}
		logging.Logger.Debug("merging env file", "path", file)
		if err := store.AddEnv(dir, dotenv.LoadOptions{Filename: name, Overwrite: s.Overwrite}); err != nil {
			return nil, err
		}
	}

	for _, assignment := range o.Set {
		key, value, ok := utils.SplitAssignment(assignment)
		if !ok || !dotenv.ValidKey(key) {
			return nil, fmt.Errorf("invalid --set %q, want KEY=VALUE", assignment)
		}
		if err := store.Set(key, value); err != nil {
			return nil, err
		}
	}

	for _, key := range o.Unset {
		if err := store.Unset(key); err != nil {
			return nil, err
		}
	}

	if err := store.CheckRequired(s.Required); err != nil {
		return nil, err
	}

	logging.Logger.Debug("variables loaded", "count", len(store.Keys()), "global", store.Global())
	return store, nil
}
