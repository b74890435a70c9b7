package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"itemsync/internal/exitcode"
	"itemsync/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create an item" }
func (c *AddCmd) Usage() string      { return "itemsync add <name...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	name := strings.Join(args, " ")

	item, err := env.Service.Create(ctx, name)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			return reportError(errOut, usagef("name required"))
		}
		return reportError(errOut, err)
	}

	env.Logger.Printf("created item %d", item.ID)
	if !env.Config.Quiet {
		fmt.Fprintf(out, "ok #%d\n", item.ID)
	}
	return exitcode.Success
}
