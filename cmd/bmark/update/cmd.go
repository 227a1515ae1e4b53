// Package updatecmd implements the `bmark update` command.
package updatecmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
)

// Command implements `bmark update`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the update command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "update",
		Short: "Regenerate the alias file from the bookmarks",
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
	n, err := svc.Update()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d aliases in %s\n", n, svc.Config.AliasFile())
	return nil
}
