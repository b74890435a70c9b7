package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"itemsync/internal/collection"
	"itemsync/internal/exitcode"
	"itemsync/internal/service"
)

// reportError prints err in the CLI's error format and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	var appErr *service.ApplicationError
	switch {
	case isUsageError(err):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: item not found")
	case errors.As(err, &appErr):
		detail := strings.TrimSpace(appErr.Body)
		if detail == "" {
			detail = http.StatusText(appErr.Status)
		}
		fmt.Fprintf(errOut, "error: backend error: %d: %s\n", appErr.Status, detail)
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.For(err)
}

// pageCache builds a collection cache using the configured page parameters.
func pageCache(env *Env) *collection.Cache {
	return collection.New(env.Service, env.Logger).WithPage(env.Config.Page, env.Config.PageSize)
}

func ok(env *Env, out io.Writer) int {
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
