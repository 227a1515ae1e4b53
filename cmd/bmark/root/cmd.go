// Package rootcmd wires the root cobra.Command for the bmark CLI binary.
package rootcmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/bmark/cmd/bmark/add"
	configcmd "github.com/go-ports/bmark/cmd/bmark/config"
	editcmd "github.com/go-ports/bmark/cmd/bmark/edit"
	listcmd "github.com/go-ports/bmark/cmd/bmark/list"
	opencmd "github.com/go-ports/bmark/cmd/bmark/open"
	rmcmd "github.com/go-ports/bmark/cmd/bmark/rm"
	setupcmd "github.com/go-ports/bmark/cmd/bmark/setup"
	"github.com/go-ports/bmark/cmd/bmark/shared"
	uninstallcmd "github.com/go-ports/bmark/cmd/bmark/uninstall"
	updatecmd "github.com/go-ports/bmark/cmd/bmark/update"
	versioncmd "github.com/go-ports/bmark/cmd/bmark/version"
	"github.com/go-ports/bmark/internal/launch"
)

// New creates and returns the root cobra.Command for the bmark CLI.
func New() *cobra.Command {
	return NewWithContext(&shared.Context{})
}

// NewWithContext creates the root command around ctx. Collaborators already
// set on ctx are kept, which lets tests substitute the filesystem and the
// launcher.
func NewWithContext(ctx *shared.Context) *cobra.Command {
	root := &cobra.Command{
		Use:           "bmark",
		Short:         "Bookmark directories and jump back to them",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if ctx.Logger == nil {
				ctx.Logger = newLogger(cmd.ErrOrStderr(), ctx.Verbose)
			}
			if ctx.Launcher == nil {
				ctx.Launcher = &launch.Shell{
					Stdin:  cmd.InOrStdin(),
					Stdout: cmd.OutOrStdout(),
					Stderr: cmd.ErrOrStderr(),
				}
			}
		},
	}

	root.PersistentFlags().StringVar(
		&ctx.ConfigFile, "config", "",
		"Settings file (default: $BMARK_CONFIG_DIR/config.toml → platform config dir)",
	)
	root.PersistentFlags().StringVar(
		&ctx.DataDir, "data-dir", "",
		"Data directory (default: settings data_dir → $BMARK_DATA_DIR → platform data dir)",
	)
	root.PersistentFlags().BoolVarP(&ctx.Verbose, "verbose", "v", false, "Log debug messages to stderr")

	root.AddCommand(
		addcmd.New(ctx).Cmd(),
		listcmd.New(ctx).Cmd(),
		opencmd.New(ctx).Cmd(),
		rmcmd.New(ctx).Cmd(),
		editcmd.New(ctx).Cmd(),
		updatecmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		setupcmd.New(ctx).Cmd(),
		uninstallcmd.New(ctx).Cmd(),
		versioncmd.New(ctx).Cmd(),
	)

	return root
}

// Execute runs the root command with ctx for cancellation.
func Execute(ctx context.Context) error {
	return New().ExecuteContext(ctx)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
