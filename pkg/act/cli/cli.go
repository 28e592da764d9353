// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"github.com/attache-dev/attache/pkg/act"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Deps is a dependency container that accepts the command's IO streams.
type Deps interface {
	SetIO(IO)
}

// ParseArgs populates cfg from positional arguments.
type ParseArgs[I act.Input] func(cfg *I, args []string) error

// SkipArgs is the ParseArgs for commands that take no positional arguments.
func SkipArgs[I act.Input](cfg *I, args []string) error {
	return nil
}

// stdio resolves the command's streams, falling back to the process defaults.
func stdio(cmd *cobra.Command) IO {
	return IO{
		In:  cmd.InOrStdin(),
		Out: cmd.OutOrStdout(),
		Err: cmd.ErrOrStderr(),
	}
}

// RunE adapts an action to cobra.Command.RunE: positional arguments are
// parsed into cfg, cfg is validated, dependencies are initialized and handed
// the command's IO streams, and the action runs under the command's context.
func RunE[I act.Input, O any, D Deps](
	cfg *I,
	parseArgs ParseArgs[I],
	initDeps act.InitDeps[D],
	action act.Action[I, O, D],
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := parseArgs(cfg, args); err != nil {
			return err
		}
		if err := (*cfg).Validate(); err != nil {
			return err
		}
		deps, err := initDeps(cmd.Context())
		if err != nil {
			return errors.Wrap(err, "initializing dependencies")
		}
		deps.SetIO(stdio(cmd))
		_, err = action(cmd.Context(), *cfg, deps)
		return err
	}
}
