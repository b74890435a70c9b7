// Package main is the entry point for the itemsync CLI.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"itemsync/internal/backend/rest"
	"itemsync/internal/cli"
	"itemsync/internal/commands"
	"itemsync/internal/config"
	"itemsync/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		return rest.New(cfg, logger)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
