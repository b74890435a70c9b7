// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/pflag"

	"itemsync/internal/commands"
	"itemsync/internal/config"
	"itemsync/internal/exitcode"
	"itemsync/internal/logging"
	"itemsync/internal/service"
)

// ServiceFactory builds the backend for commands that need one. Tests
// substitute a fake.
type ServiceFactory func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error)

// Dispatcher resolves a command, parses its flags and runs it.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher returns a dispatcher over registry. factory may be nil when
// only commands without a backend will run.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run dispatches args (without the program name) and returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> first page of items
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatchCommand(ctx, cmd, args[1:], out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		configDir string
		tenant    string
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&tenant, "tenant", "", "")
	fs.BoolVarP(&quiet, "quiet", "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage:\n  %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := d.loadConfig(cmd, configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: config: %s\n", err)
		return exitcode.ConfigError
	}
	if fs.Changed("tenant") {
		cfg.Tenant = strings.TrimSpace(tenant)
	}
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger, closer := logging.New(cfg, errOut)
	defer closer.Close()

	env := &commands.Env{Config: cfg, Logger: logger}

	if cmd.NeedsBackend() {
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(errOut, "error: config: %s\n", err)
			return exitcode.ConfigError
		}
		if d.factory == nil {
			fmt.Fprintln(errOut, "error: no backend configured")
			return exitcode.ConfigError
		}
		svc, err := d.factory(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: config: %s\n", err)
			return exitcode.ConfigError
		}
		env.Service = svc
	}

	logger.Printf("run %s %v", cmd.Name(), fs.Args())
	return cmd.Run(ctx, env, fs.Args(), out, errOut)
}

// loadConfig reads the config file and environment for commands that talk
// to the backend. Other commands only need defaults, so a broken config
// file never stops help or version.
func (d *Dispatcher) loadConfig(cmd commands.Command, dir string) (*config.Config, error) {
	if !cmd.NeedsBackend() {
		return config.New(dir)
	}
	return config.Load(dir)
}
