package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"itemsync/internal/draft"
	"itemsync/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete an item" }
func (c *RmCmd) Usage() string      { return "itemsync rm <ref> --yes" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.yes, "yes", "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseItemRef(args)
	if err != nil {
		return reportError(errOut, err)
	}
	if !c.yes {
		return reportError(errOut, usagef("refusing to delete %s without --yes", ref))
	}

	item, err := ResolveItem(ctx, env.Service, pageCache(env), ref)
	if err != nil {
		return reportError(errOut, err)
	}

	sess := draft.NewSession(env.Service, item, env.Logger)
	defer sess.Close()

	msg, err := sess.Delete(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	env.Logger.Printf("deleted item %d: %s", item.ID, msg)
	if !env.Config.Quiet {
		fmt.Fprintf(out, "ok #%d\n", item.ID)
	}
	return exitcode.Success
}
