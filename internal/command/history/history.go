// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package history implements the change journal command.
package history

import (
	"context"
	"flag"
	"fmt"

	"github.com/attache-dev/attache/internal/command/base"
	journal "github.com/attache-dev/attache/internal/history"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the history command.
type Config struct {
	Limit  int
	Config string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	return nil
}

// Deps holds the dependencies for the history command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the history command.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Handler contains the business logic for the history command.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	rec, ok := env.Recorder.(*journal.GitRecorder)
	if !ok {
		return nil, errors.New("change journaling is disabled")
	}
	entries, err := rec.Entries(ctx, cfg.Limit)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		fmt.Fprintln(deps.IO.Out, "No changes journaled yet.")
		return &act.NoOutput{}, nil
	}
	for _, e := range entries {
		fmt.Fprintln(deps.IO.Out, fmt.Sprintf("%s  %s  %s", e.Hash, e.When.Format("2006-01-02 15:04"), e.Message))
	}
	return &act.NoOutput{}, nil
}

// Command creates a new cobra command for listing journaled changes.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "history [-limit N]",
		Short: "List journaled changes, newest first",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[Config],
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.IntVar(&cfg.Limit, "limit", 20, "how many changes to show, 0 shows all")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
