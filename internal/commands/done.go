package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"itemsync/internal/exitcode"
	"itemsync/internal/toggle"
)

func init() {
	Register(&DoneCmd{completed: true})
	Register(&DoneCmd{completed: false})
}

// DoneCmd implements the done and undo commands. Both flip the
// completion flag through the toggle synchronizer; they differ only in
// which state they expect to move the item into.
type DoneCmd struct {
	completed bool
}

func (c *DoneCmd) Name() string {
	if c.completed {
		return "done"
	}
	return "undo"
}

func (c *DoneCmd) Aliases() []string {
	if c.completed {
		return []string{"complete"}
	}
	return []string{"reopen"}
}

func (c *DoneCmd) Synopsis() string {
	if c.completed {
		return "Mark an item done"
	}
	return "Move a done item back to to do"
}

func (c *DoneCmd) Usage() string      { return "itemsync " + c.Name() + " <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseItemRef(args)
	if err != nil {
		return reportError(errOut, err)
	}

	cache := pageCache(env)
	item, err := ResolveItem(ctx, env.Service, cache, ref)
	if err != nil {
		return reportError(errOut, err)
	}

	if item.IsCompleted == c.completed {
		state := "to do"
		if item.IsCompleted {
			state = "done"
		}
		return reportError(errOut, usagef("item #%d is already %s", item.ID, state))
	}

	if _, err := toggle.New(env.Service, cache, env.Logger).Toggle(ctx, item.ID, item.IsCompleted); err != nil {
		return reportError(errOut, err)
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "ok #%d\n", item.ID)
	}
	return exitcode.Success
}
