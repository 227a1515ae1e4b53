// Package configcmd implements the `bmark config` command group.
package configcmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/bmark/cmd/bmark/shared"
	"github.com/go-ports/bmark/internal/config"
	"github.com/go-ports/bmark/internal/service"
)

// Command implements `bmark config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group. Without a subcommand it behaves
// like `config show`.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	show := newShow(ctx)
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}
	c.cmd.Flags().AddFlagSet(show.Flags())
	c.cmd.AddCommand(
		show,
		newCreate(ctx),
		newEdit(ctx),
		newSourceCmd(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

// ---------------------------------------------------------------------------
// config show
// ---------------------------------------------------------------------------

func newShow(ctx *shared.Context) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.Config()
			if err != nil {
				return err
			}
			b, err := render(cfg, format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml, yaml or json")
	return cmd
}

func render(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "toml":
		return config.Encode(cfg)
	case "yaml":
		return yaml.Marshal(cfg)
	case "json":
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want toml, yaml or json)", format)
	}
}

// ---------------------------------------------------------------------------
// config create
// ---------------------------------------------------------------------------

func newCreate(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write the default configuration to the settings file",
		Long: "Write the default configuration to the settings file.\n\n" +
			"data_dir is written as the resolved data directory rather than left\n" +
			"empty, so the file pins the current location. Remove the key to fall\n" +
			"back to $BMARK_DATA_DIR or the platform data directory again.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path, err := svc.CreateSettings(force)
			if errors.Is(err, service.ErrSettingsExist) {
				fmt.Fprintf(out, "Config already exists at %s\n", svc.Config.SettingsFile)
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

// ---------------------------------------------------------------------------
// config edit
// ---------------------------------------------------------------------------

func newEdit(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the settings file in the editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := ctx.Service()
			if err != nil {
				return err
			}
			return svc.EditSettings(cmd.Context())
		},
	}
}

// ---------------------------------------------------------------------------
// config source-cmd
// ---------------------------------------------------------------------------

func newSourceCmd(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "source-cmd",
		Short: "Print the shell command that loads the aliases",
		Long: "Print the shell command that loads the aliases, for example:\n\n" +
			"  eval \"$(bmark config source-cmd)\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.Config()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.SourceCommand())
			return nil
		},
	}
}
