// Package uninstallcmd implements the `bmark uninstall` command group.
package uninstallcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
	"github.com/go-ports/bmark/internal/setup"
)

// Command implements `bmark uninstall`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the uninstall command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "uninstall",
		Short: "Stop loading bookmark aliases from a shell startup file",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}
	for _, shell := range setup.Shells {
		c.cmd.AddCommand(newUninstallShell(shell))
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func newUninstallShell(shell string) *cobra.Command {
	var rcFile string
	cmd := &cobra.Command{
		Use:   shell,
		Short: fmt.Sprintf("Remove the bmark block from the %s startup file", shell),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := rcFile
			if target == "" {
				var err error
				if target, err = setup.DefaultRCFile(shell); err != nil {
					return err
				}
			}
			result, err := setup.Uninstall(target)
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
