package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"itemsync/internal/exitcode"
	"itemsync/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `itemsync` (no args) and `itemsync list`.
type ListCmd struct {
	page     int
	pageSize int
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List items split into to do / done" }
func (c *ListCmd) Usage() string      { return "itemsync list [--page <n>] [--page-size <n>]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.IntVarP(&c.page, "page", "p", 0, "")
	fs.IntVar(&c.pageSize, "page-size", 0, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	page, pageSize := env.Config.Page, env.Config.PageSize
	if c.page != 0 {
		page = c.page
	}
	if c.pageSize != 0 {
		pageSize = c.pageSize
	}
	if page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", page)
		return exitcode.UserError
	}
	if pageSize < 1 {
		fmt.Fprintf(errOut, "error: invalid page size: %d\n", pageSize)
		return exitcode.UserError
	}

	cache := pageCache(env)
	view, err := cache.Refresh(ctx, page, pageSize)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(view.Items) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no items found")
		}
		return exitcode.Success
	}

	incomplete, complete := view.Partition()
	output.FormatSections(out, incomplete, complete)
	return exitcode.Success
}
