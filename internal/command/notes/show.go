// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package notes

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/internal/ui/details"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ShowConfig holds all configuration for the notes show command.
type ShowConfig struct {
	ID     int
	Config string
}

// Validate ensures the configuration is valid.
func (c ShowConfig) Validate() error {
	if c.ID <= 0 {
		return errors.New("id must be positive")
	}
	return nil
}

// ParseShowArgs parses positional arguments into the ShowConfig.
func ParseShowArgs(cfg *ShowConfig, args []string) error {
	if len(args) != 1 {
		return errors.Errorf("expected exactly 1 argument (id), got %d", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Wrapf(err, "parsing id %q", args[0])
	}
	cfg.ID = id
	return nil
}

// ShowHandler contains the business logic for the notes show command.
func ShowHandler(ctx context.Context, cfg ShowConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	notes, err := env.Client.Notes(ctx, store.NoteQuery{IDs: []int{cfg.ID}})
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, errors.Errorf("no note with ID %d", cfg.ID)
	}
	text, err := details.Format(notes[0])
	if err != nil {
		return nil, errors.Wrap(err, "formatting note")
	}
	fmt.Fprint(deps.IO.Out, text)
	return &act.NoOutput{}, nil
}

func showCommand() *cobra.Command {
	cfg := ShowConfig{}
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one note in full",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			ParseShowArgs,
			InitDeps,
			ShowHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(showFlagSet(cmd.Name(), &cfg))
	return cmd
}

// showFlagSet returns the command-line flags for the ShowConfig struct.
func showFlagSet(name string, cfg *ShowConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
