// Package rmcmd implements the `bmark rm` command.
package rmcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
)

// Command implements `bmark rm`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the rm command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark by name",
		Args:    cobra.ExactArgs(1),
		RunE:    c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	if err := svc.Remove(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark %s\n", args[0])
	return nil
}
