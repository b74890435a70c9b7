package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"itemsync/internal/exitcode"
	"itemsync/internal/output"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return []string{"get"} }
func (c *ShowCmd) Synopsis() string   { return "Show one item" }
func (c *ShowCmd) Usage() string      { return "itemsync show <ref>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, err := ParseItemRef(args)
	if err != nil {
		return reportError(errOut, err)
	}

	item, err := ResolveItem(ctx, env.Service, pageCache(env), ref)
	if err != nil {
		return reportError(errOut, err)
	}

	output.FormatItem(out, item)
	return exitcode.Success
}
