package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Anas-en/College-event-management/internal/app"
	"github.com/Anas-en/College-event-management/internal/cli"
	"github.com/Anas-en/College-event-management/internal/config"
)

func main() {
	cmd := cli.NewRootCommand(open)
	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Reported() {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

func open(ctx context.Context) (*cli.Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	// keep stdout clean for --format json
	cfg.Logger.Level = "error"

	log, err := app.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	core, err := app.NewCore(ctx, cfg, log, nil)
	if err != nil {
		return nil, err
	}

	return &cli.Session{
		Events:        core.Events,
		Registrations: core.Registrations,
		Close:         core.Close,
	}, nil
}
