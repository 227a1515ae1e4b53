// Package setupcmd implements the `bmark setup` command group.
package setupcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
	"github.com/go-ports/bmark/internal/setup"
)

// Command implements `bmark setup`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the setup command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "setup",
		Short: "Load bookmark aliases from a shell startup file",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	for _, shell := range setup.Shells {
		c.cmd.AddCommand(newSetupShell(ctx, shell))
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newSetupShell(ctx *shared.Context, shell string) *cobra.Command {
	var rcFile string
	cmd := &cobra.Command{
		Use:   shell,
		Short: fmt.Sprintf("Source the alias file from the %s startup file", shell),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := ctx.Config()
			if err != nil {
				return err
			}
			target := rcFile
			if target == "" {
				if target, err = setup.DefaultRCFile(shell); err != nil {
					return err
				}
			}
			result, err := setup.Install(target, cfg.AliasFile())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&rcFile, "rc", "", "Startup file to modify")
	return cmd
}
