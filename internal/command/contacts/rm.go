// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package contacts

import (
	"context"
	"flag"
	"fmt"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RmConfig holds all configuration for the contacts rm command.
type RmConfig struct {
	ID     int
	Config string
}

// Validate ensures the configuration is valid.
func (c RmConfig) Validate() error {
	if c.ID <= 0 {
		return errors.New("id is required")
	}
	return nil
}

// RmHandler contains the business logic for the contacts rm command.
func RmHandler(ctx context.Context, cfg RmConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	if err := env.Client.DeleteContact(ctx, cfg.ID); err != nil {
		return nil, err
	}
	if err := env.Recorder.Record(ctx, fmt.Sprintf("contact rm: %d", cfg.ID)); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Deleted contact %d.", cfg.ID)))
	return &act.NoOutput{}, nil
}

func rmCommand() *cobra.Command {
	cfg := RmConfig{}
	cmd := &cobra.Command{
		Use:   "rm -id <id>",
		Short: "Delete a contact",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[RmConfig],
			InitDeps,
			RmHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(rmFlagSet(cmd.Name(), &cfg))
	return cmd
}

// rmFlagSet returns the command-line flags for the RmConfig struct.
func rmFlagSet(name string, cfg *RmConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.IntVar(&cfg.ID, "id", 0, "the ID of the contact to delete")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
