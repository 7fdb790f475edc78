package commands

import (
	"github.com/AD7six/dotenv/internal/commands/config"
	"github.com/AD7six/dotenv/internal/commands/vars"
	"github.com/AD7six/dotenv/internal/commands/version"
	internalconfig "github.com/AD7six/dotenv/internal/config"
	"github.com/AD7six/dotenv/internal/logging"
	"github.com/AD7six/dotenv/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootFlags struct {
	path      string
	filename  string
	overwrite bool
	local     bool
	required  []string
	logLevel  string
}

// apply overrides settings with the flags given on the command line.
func (f *rootFlags) apply(fs *pflag.FlagSet, s *internalconfig.Settings) {
	if fs.Changed("path") {
		s.Path = f.path
	}
	if fs.Changed("file") {
		s.Filename = f.filename
	}
	if fs.Changed("overwrite") {
		s.Overwrite = f.overwrite
	}
	if fs.Changed("local") {
		s.Global = !f.local
	}
	if fs.Changed("require") {
		for _, key := range f.required {
			s.Required = append(s.Required, utils.ParseCommaSeparated(key)...)
		}
	}
	if fs.Changed("log-level") {
		s.LogLevel = f.logLevel
	}
}

// NewRootCmd builds the dotenv command tree.
func NewRootCmd() *cobra.Command {
	settings := &internalconfig.Settings{}
	opts := &vars.Options{Settings: settings}
	var flags rootFlags

	root := &cobra.Command{
		Use:           "dotenv",
		Short:         "Load .env files and inspect the resolved variables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := internalconfig.LoadSettings()
			if err != nil {
				return err
			}
			*settings = *loaded
			flags.apply(cmd.Flags(), settings)

			if _, err := logging.ParseLevel(settings.LogLevel); err != nil {
				return err
			}
			logging.InitLogger(settings.LogLevel)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.path, "path", "p", "", "Directory containing the env file (default \".\" or DOTENV_PATH)")
	pf.StringVarP(&flags.filename, "file", "f", "", "Env file name (default \".env\" or DOTENV_FILENAME)")
	pf.BoolVar(&flags.overwrite, "overwrite", false, "Replace variables that are already set")
	pf.BoolVar(&flags.local, "local", false, "Keep variables out of the process environment")
	pf.StringSliceVar(&flags.required, "require", nil, "Comma-separated variables that must be set")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		vars.NewGetCmd(opts),
		vars.NewListCmd(opts),
		vars.NewExportCmd(opts),
		vars.NewCheckCmd(opts),
		vars.NewRunCmd(opts),
		config.NewConfigCmd(settings),
		version.NewVersionCmd(),
	)

	return root
}
