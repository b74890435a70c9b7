// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"io"
	"log"

	"github.com/spf13/pflag"

	"itemsync/internal/config"
	"itemsync/internal/service"
)

// Env carries what a command needs to run.
type Env struct {
	// Config is always provided.
	Config *config.Config

	// Service is nil if NeedsBackend() returns false.
	Service service.Service

	// Logger is never nil.
	Logger *log.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the item API.
	// Commands like help and version return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *pflag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
