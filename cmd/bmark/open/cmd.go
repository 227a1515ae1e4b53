// Package opencmd implements the `bmark open` command.
package opencmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
	"github.com/go-ports/bmark/internal/launch"
)

// Command implements `bmark open`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the open command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "open",
		Short: "Choose a bookmark and open a terminal there",
		Long: "Feed the bookmark listing to the picker command and start the " +
			"terminal command in the chosen directory. Set picker_cmd to \"builtin\" " +
			"to use the built-in fuzzy finder.",
		Args: cobra.NoArgs,
		RunE: c.run,
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
	b, err := svc.Open(cmd.Context())
	if errors.Is(err, launch.ErrNoSelection) {
		fmt.Fprintln(cmd.ErrOrStderr(), "No bookmark chosen.")
		return nil
	}
	if err != nil {
		return err
	}
	c.ctx.Logger.Info("opened bookmark", "name", b.Name, "path", b.Path)
	return nil
}
