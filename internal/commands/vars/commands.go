package vars

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/AD7six/dotenv/internal/storage"
	"github.com/AD7six/dotenv/internal/utils"
	"github.com/spf13/cobra"
)

// NewGetCmd prints the value of one or more variables.
func NewGetCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY...",
		Short: "Print the resolved value of variables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.Open()
			if err != nil {
				return err
			}

			var missing []string
			for _, key := range args {
				v, ok := store.Get(key)
				if !ok {
					missing = append(missing, key)
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			if len(missing) > 0 {
				return fmt.Errorf("not set: %v", missing)
			}
			return nil
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// NewListCmd prints every loaded variable as KEY=value.
func NewListCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the loaded variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.Open()
			if err != nil {
				return err
			}

			vars := store.Environ()
			for _, key := range store.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, vars[key])
			}
			return nil
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// NewExportCmd writes the loaded variables in a machine-readable format.
func NewExportCmd(opts *Options) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the loaded variables as env, JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := opts.Settings.Format
			if cmd.Flags().Changed("format") {
				parsed, err := storage.ParseFormat(format)
				if err != nil {
					return err
				}
				f = parsed
			}

			store, err := opts.Open()
			if err != nil {
				return err
			}

			if output != "" {
				return storage.WriteFile(output, f, store.Environ())
			}
			return storage.Encode(cmd.OutOrStdout(), f, store.Environ())
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: env, json or yaml (default from DOTENV_FORMAT, else env)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	opts.AddFlags(cmd.Flags())
	return cmd
}

// NewCheckCmd loads the env file and verifies the required variables.
func NewCheckCmd(opts *Options) *cobra.Command {
	var required string

	cmd := &cobra.Command{
		Use:   "check [KEY...]",
		Short: "Verify that the env file loads and required variables are set",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *opts.Settings
			s.Required = utils.ParseCommaSeparated(required)
			s.Required = append(s.Required, opts.Settings.Required...)
			s.Required = append(s.Required, args...)

			o := *opts
			o.Settings = &s
			store, err := o.Open()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d variables loaded\n", len(store.Keys()))
			return nil
		},
	}

	cmd.Flags().StringVar(&required, "keys", "", "Comma-separated list of required variables")
	opts.AddFlags(cmd.Flags())
	return cmd
}

// NewRunCmd loads the env file into the process environment and runs a command with it.
func NewRunCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run a command with the loaded variables in its environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *opts.Settings
			s.Global = true

			o := *opts
			o.Settings = &s
			if _, err := o.Open(); err != nil {
				return err
			}

			c := exec.Command(args[0], args[1:]...)
			c.Env = os.Environ()
			c.Stdin = cmd.InOrStdin()
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = cmd.ErrOrStderr()

			if err := c.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return fmt.Errorf("%s exited with code %d", args[0], exitErr.ExitCode())
				}
				return fmt.Errorf("failed to run %s: %w", args[0], err)
			}
			return nil
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}
