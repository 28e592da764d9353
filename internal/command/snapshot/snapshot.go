// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot implements the snapshot commands.
package snapshot

import (
	"context"
	"flag"
	"fmt"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var green = color.New(color.FgGreen).SprintFunc()

// Deps holds the dependencies for the snapshot commands.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the snapshot commands.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Command creates a new cobra command grouping the snapshot commands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save and restore copies of the data home",
	}
	cmd.AddCommand(createCommand(), listCommand(), restoreCommand())
	return cmd
}

// CreateConfig holds all configuration for the snapshot create command.
type CreateConfig struct {
	Label  string
	Config string
}

// Validate ensures the configuration is valid.
func (c CreateConfig) Validate() error {
	return nil
}

// CreateHandler contains the business logic for the snapshot create command.
func CreateHandler(ctx context.Context, cfg CreateConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	s, err := env.Client.CreateSnapshot(ctx, cfg.Label)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Created snapshot %s (%d contacts, %d notes).", s.ID, s.Contacts, s.Notes)))
	return &act.NoOutput{}, nil
}

func createCommand() *cobra.Command {
	cfg := CreateConfig{}
	cmd := &cobra.Command{
		Use:   "create [-label <text>]",
		Short: "Snapshot the current contacts and notes",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[CreateConfig],
			InitDeps,
			CreateHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(createFlagSet(cmd.Name(), &cfg))
	return cmd
}

// createFlagSet returns the command-line flags for the CreateConfig struct.
func createFlagSet(name string, cfg *CreateConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Label, "label", "", "a short description of the snapshot")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}

// ListConfig holds all configuration for the snapshot list command.
type ListConfig struct {
	Config string
}

// Validate ensures the configuration is valid.
func (c ListConfig) Validate() error {
	return nil
}

// ListHandler contains the business logic for the snapshot list command.
func ListHandler(ctx context.Context, cfg ListConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	snaps, err := env.Client.Snapshots(ctx)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(deps.IO.Out, "No snapshots yet.")
		return &act.NoOutput{}, nil
	}
	for _, s := range snaps {
		line := fmt.Sprintf("%s  %s  %d contacts, %d notes", s.ID[:8], s.Created.Format("2006-01-02 15:04"), s.Contacts, s.Notes)
		if s.Label != "" {
			line += fmt.Sprintf("  %s", s.Label)
		}
		fmt.Fprintln(deps.IO.Out, line)
	}
	return &act.NoOutput{}, nil
}

func listCommand() *cobra.Command {
	cfg := ListConfig{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[ListConfig],
			InitDeps,
			ListHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(listFlagSet(cmd.Name(), &cfg))
	return cmd
}

// listFlagSet returns the command-line flags for the ListConfig struct.
func listFlagSet(name string, cfg *ListConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}

// RestoreConfig holds all configuration for the snapshot restore command.
type RestoreConfig struct {
	ID     string
	Config string
}

// Validate ensures the configuration is valid.
func (c RestoreConfig) Validate() error {
	if c.ID == "" {
		return errors.New("id is required")
	}
	return nil
}

// ParseRestoreArgs parses positional arguments into the RestoreConfig.
func ParseRestoreArgs(cfg *RestoreConfig, args []string) error {
	if len(args) != 1 {
		return errors.Errorf("expected exactly 1 argument (id), got %d", len(args))
	}
	cfg.ID = args[0]
	return nil
}

// RestoreHandler contains the business logic for the snapshot restore command.
func RestoreHandler(ctx context.Context, cfg RestoreConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	s, err := env.Client.RestoreSnapshot(ctx, cfg.ID)
	if err != nil {
		return nil, err
	}
	if err := env.Recorder.Record(ctx, fmt.Sprintf("snapshot restore: %s", s.ID)); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Restored snapshot %s (%d contacts, %d notes).", s.ID, s.Contacts, s.Notes)))
	return &act.NoOutput{}, nil
}

func restoreCommand() *cobra.Command {
	cfg := RestoreConfig{}
	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the live records with a snapshot's",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			ParseRestoreArgs,
			InitDeps,
			RestoreHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(restoreFlagSet(cmd.Name(), &cfg))
	return cmd
}

// restoreFlagSet returns the command-line flags for the RestoreConfig struct.
func restoreFlagSet(name string, cfg *RestoreConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
