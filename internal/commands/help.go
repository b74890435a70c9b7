package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"itemsync/internal/exitcode"
)

func init() {
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
type HelpCmd struct {
	registry *Registry
}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "itemsync help [command]" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := c.registry.Find(args[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
			return exitcode.UserError
		}
		fmt.Fprintf(out, "Usage:\n  %s\n\n%s\n", cmd.Usage(), cmd.Synopsis())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(out, "\nAliases: %s\n", strings.Join(aliases, ", "))
		}
		return exitcode.Success
	}
	WriteUsage(out, c.registry)
	return exitcode.Success
}

// WriteUsage prints the top-level usage listing every command in r.
func WriteUsage(w io.Writer, r *Registry) {
	fmt.Fprint(w, "Usage:\n  itemsync                 List the first page of items\n")
	for _, cmd := range r.All() {
		fmt.Fprintf(w, "  %-24s %s\n", cmd.Name(), cmd.Synopsis())
	}
	fmt.Fprint(w, commonFlagsText+refsText)
}

const commonFlagsText = `
Common flags:
  --config <dir>    Override config directory
  --tenant <id>     Override the configured tenant
  -q, --quiet       Suppress informational output
  --debug           Print debug logs to stderr
`

const refsText = `
Item references:
  12, #12           Item by server id
  t1, t 1           First item in the to do section
  d3, d 3           Third item in the done section
`
