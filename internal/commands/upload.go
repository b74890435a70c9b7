package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"itemsync/internal/exitcode"
	"itemsync/internal/upload"
)

func init() {
	Register(&UploadCmd{})
}

// UploadCmd implements the upload command.
type UploadCmd struct{}

func (c *UploadCmd) Name() string       { return "upload" }
func (c *UploadCmd) Aliases() []string  { return nil }
func (c *UploadCmd) Synopsis() string   { return "Upload an image and print its URL" }
func (c *UploadCmd) Usage() string      { return "itemsync upload <path>" }
func (c *UploadCmd) NeedsBackend() bool { return true }

func (c *UploadCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UploadCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		return reportError(errOut, usagef("usage: %s", c.Usage()))
	}

	url, err := upload.New(env.Service, env.Logger).UploadFile(ctx, args[0])
	if err != nil {
		return reportError(errOut, err)
	}

	fmt.Fprintln(out, url)
	return exitcode.Success
}
