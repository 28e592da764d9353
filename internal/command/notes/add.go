// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package notes

import (
	"context"
	"flag"
	"fmt"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// AddConfig holds all configuration for the notes add command.
type AddConfig struct {
	Title   string
	Content string
	Tags    string
	Config  string
}

// Validate ensures the configuration is valid.
func (c AddConfig) Validate() error {
	if c.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// ParseAddArgs parses positional arguments into the AddConfig.
func ParseAddArgs(cfg *AddConfig, args []string) error {
	if len(args) != 1 {
		return errors.Errorf("expected exactly 1 argument (title), got %d", len(args))
	}
	cfg.Title = args[0]
	return nil
}

// AddHandler contains the business logic for the notes add command.
func AddHandler(ctx context.Context, cfg AddConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	stored, err := env.Client.PutNote(ctx, note.New(cfg.Title, cfg.Content, note.ParseTags(cfg.Tags)))
	if err != nil {
		return nil, errors.Wrap(err, "storing note")
	}
	if err := env.Recorder.Record(ctx, fmt.Sprintf("note add: %s", stored.Title)); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Added note %q with ID %d.", stored.Title, stored.ID)))
	return &act.NoOutput{}, nil
}

func addCommand() *cobra.Command {
	cfg := AddConfig{}
	cmd := &cobra.Command{
		Use:   "add <title> [-content <text>] [-tags <t1>,<t2>]",
		Short: "Add a note",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			ParseAddArgs,
			InitDeps,
			AddHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(addFlagSet(cmd.Name(), &cfg))
	return cmd
}

// addFlagSet returns the command-line flags for the AddConfig struct.
func addFlagSet(name string, cfg *AddConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Content, "content", "", "the body of the note")
	set.StringVar(&cfg.Tags, "tags", "", "comma-separated tags")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
