package config

import (
	"fmt"
	"io"
	"strings"

	internalconfig "github.com/AD7six/dotenv/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd returns a cobra command that displays the effective settings.
func NewConfigCmd(settings *internalconfig.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Shows the current configuration values as ENV_VAR: value pairs, after flags are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			displaySettings(cmd.OutOrStdout(), settings)
			return nil
		},
	}

	return cmd
}

// displaySettings prints each setting as "ENV_VAR: value"
func displaySettings(w io.Writer, s *internalconfig.Settings) {
	fmt.Fprintf(w, "DOTENV_PATH: %s\n", s.Path)
	fmt.Fprintf(w, "DOTENV_FILENAME: %s\n", s.Filename)
	fmt.Fprintf(w, "DOTENV_GLOBAL: %t\n", s.Global)
	fmt.Fprintf(w, "DOTENV_OVERWRITE: %t\n", s.Overwrite)
	fmt.Fprintf(w, "DOTENV_REQUIRED: %s\n", strings.Join(s.Required, ","))
	fmt.Fprintf(w, "DOTENV_FORMAT: %s\n", s.Format)
	fmt.Fprintf(w, "LOG_LEVEL: %s\n", s.LogLevel)
}
