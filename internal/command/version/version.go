// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package version implements the version command.
//
// Release binaries embed the version at build time:
//
//	$ go build -ldflags "-X .../internal/command/version.Version=..."
package version

import (
	"context"
	"fmt"

	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/spf13/cobra"
)

// Version is the build version, stamped with -ldflags for releases.
var Version = "(devel)"

// Config holds all configuration for the version command.
type Config struct{}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	return nil
}

// Deps holds the dependencies for the version command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the version command.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Handler contains the business logic for the version command.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	fmt.Fprintln(deps.IO.Out, Version)
	return &act.NoOutput{}, nil
}

// Command creates a new cobra command printing the build version.
func Command() *cobra.Command {
	cfg := Config{}
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[Config],
			InitDeps,
			Handler,
		),
	}
}
