// Package editcmd implements the `bmark edit` command.
package editcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
)

// Command implements `bmark edit`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the edit command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "edit",
		Short: "Edit the bookmark file, then regenerate aliases",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	n, err := svc.Edit(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d aliases in %s\n", n, svc.Config.AliasFile())
	return nil
}
