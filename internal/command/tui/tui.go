// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui implements the terminal UI command.
package tui

import (
	"context"
	"flag"

	"github.com/attache-dev/attache/internal/assistant"
	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/internal/ui"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/spf13/cobra"
)

// Config holds all configuration for the tui command.
type Config struct {
	Config string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	return nil
}

// Deps holds the dependencies for the tui command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the tui command.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Handler starts the terminal UI and blocks until it exits.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	backend := assistant.NewAssistant(env.Client, env.Recorder)
	app, err := ui.NewTuiApp(ctx, env.Client, env.Client, env.Client, env.Recorder, backend, env.DataDir)
	if err != nil {
		return nil, err
	}
	if err := app.Run(); err != nil {
		return nil, err
	}
	return &act.NoOutput{}, nil
}

// Command creates a new cobra command for the terminal UI.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse contacts and notes interactively",
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
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
