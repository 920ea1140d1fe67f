// Package cli wires configuration, logging and storage into the quotedesk
// subcommands.
package cli

import (
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/rpggio/quotedesk/internal/config"
)

// Version is stamped at build time.
var Version = "dev"

// app carries state shared by every subcommand.
type app struct {
	fs         afero.Fs
	configPath string
	cfg        config.Config
	stdout     io.Writer
	stderr     io.Writer
}

// Option customizes the root command, mostly for tests.
type Option func(*app)

// WithFs reads the config file from fsys instead of the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(a *app) { a.fs = fsys }
}

// WithOutput redirects command output.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *app) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// NewRootCmd creates the quotedesk command tree.
func NewRootCmd(opts ...Option) *cobra.Command {
	a := &app{
		fs:     afero.NewOsFs(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "quotedesk",
		Short:         "Quote store service, terminal client and scraper",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.fs, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configPath, "config", "",
		"path to a YAML config file (default $"+config.EnvPrefix+"CONFIG_PATH)")

	root.AddCommand(
		newServeCmd(a),
		newClientCmd(a),
		newIngestCmd(a),
		newMCPCmd(a),
	)
	return root
}
