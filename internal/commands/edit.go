package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"itemsync/internal/draft"
	"itemsync/internal/exitcode"
	"itemsync/internal/upload"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
// It opens a draft session on the item, applies the flags to the draft
// and commits only the fields that differ from the server copy.
type EditCmd struct {
	memo      string
	clearMemo bool
	imageURL  string
	imageFile string
	fs        *pflag.FlagSet
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit an item's memo or image" }
func (c *EditCmd) Usage() string {
	return "itemsync edit <ref> [--memo <text> | --clear-memo] [--image-url <url> | --image-file <path>]"
}
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.memo, "memo", "m", "", "")
	fs.BoolVar(&c.clearMemo, "clear-memo", false, "")
	fs.StringVar(&c.imageURL, "image-url", "", "")
	fs.StringVar(&c.imageFile, "image-file", "", "")
	c.fs = fs
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	memoSet := c.fs != nil && c.fs.Changed("memo")
	imageURLSet := c.fs != nil && c.fs.Changed("image-url")

	if memoSet && c.clearMemo {
		return reportError(errOut, usagef("--memo and --clear-memo are mutually exclusive"))
	}
	if imageURLSet && c.imageFile != "" {
		return reportError(errOut, usagef("--image-url and --image-file are mutually exclusive"))
	}
	if !memoSet && !c.clearMemo && !imageURLSet && c.imageFile == "" {
		return reportError(errOut, usagef("nothing to edit: use --memo, --clear-memo, --image-url or --image-file"))
	}

	ref, err := ParseItemRef(args)
	if err != nil {
		return reportError(errOut, err)
	}
	item, err := ResolveItem(ctx, env.Service, pageCache(env), ref)
	if err != nil {
		return reportError(errOut, err)
	}

	sess := draft.NewSession(env.Service, item, env.Logger)
	defer sess.Close()

	switch {
	case c.clearMemo:
		err = sess.SetMemo("")
	case memoSet:
		err = sess.SetMemo(c.memo)
	}
	if err != nil {
		return reportError(errOut, err)
	}

	imageURL := c.imageURL
	if c.imageFile != "" {
		imageURL, err = upload.New(env.Service, env.Logger).UploadFile(ctx, c.imageFile)
		if err != nil {
			return reportError(errOut, err)
		}
		imageURLSet = true
	}
	if imageURLSet {
		if err := sess.SetImageURL(imageURL); err != nil {
			return reportError(errOut, err)
		}
	}

	if sess.Diff().IsEmpty() {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no changes")
		}
		return exitcode.Success
	}

	if err := sess.Commit(ctx); err != nil {
		return reportError(errOut, err)
	}
	return ok(env, out)
}
