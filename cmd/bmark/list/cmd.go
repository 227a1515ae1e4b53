// Package listcmd implements the `bmark list` command.
package listcmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ports/bmark/cmd/bmark/shared"
)

// Command implements `bmark list`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command

	asJSON    bool
	showPaths bool
}

// New creates the list command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks",
		Args:    cobra.NoArgs,
		RunE:    c.run,
	}
	c.cmd.Flags().BoolVar(&c.asJSON, "json", false, "Print a JSON array of {name, path}")
	c.cmd.Flags().BoolVarP(&c.showPaths, "paths", "p", false, "Show paths next to names")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	svc, err := c.ctx.Service()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if c.asJSON {
		t, err := svc.List()
		if err != nil {
			return err
		}
		b, err := json.MarshalIndent(t.Bookmarks(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	}

	listing, err := svc.Listing(c.showPaths)
	if err != nil {
		return err
	}
	fmt.Fprint(out, listing)
	return nil
}
