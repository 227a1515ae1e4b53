// Package addcmd implements the `bmark add` command.
package addcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
)

// Command implements `bmark add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add [name]",
		Short: "Bookmark the current directory",
		Long: "Bookmark the current directory under name. Without a name the " +
			"final element of the directory path is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: c.run,
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
	cwd, err := c.ctx.Cwd()
	if err != nil {
		return fmt.Errorf("determine current directory: %w", err)
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	}
	res, err := svc.Add(name, cwd)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added bookmark %s -> %s\n", res.Name, res.Path)
	return nil
}
