// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package notes

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// EditConfig holds all configuration for the notes edit command.
// Unset flags keep the stored values.
type EditConfig struct {
	ID      int
	Title   string
	Content string
	Tags    string
	Config  string
}

// Validate ensures the configuration is valid.
func (c EditConfig) Validate() error {
	if c.ID <= 0 {
		return errors.New("id must be positive")
	}
	return nil
}

// ParseEditArgs parses positional arguments into the EditConfig.
func ParseEditArgs(cfg *EditConfig, args []string) error {
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

// EditHandler contains the business logic for the notes edit command.
func EditHandler(ctx context.Context, cfg EditConfig, deps *Deps) (*act.NoOutput, error) {
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
	n := notes[0]
	// A tag list replaces the whole stored set.
	var tags []string
	if cfg.Tags != "" {
		tags = note.ParseTags(cfg.Tags)
	}
	n.Update(cfg.Title, cfg.Content, tags)
	if _, err := env.Client.PutNote(ctx, n); err != nil {
		return nil, errors.Wrap(err, "storing note")
	}
	if err := env.Recorder.Record(ctx, fmt.Sprintf("note edit: %d", n.ID)); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Updated note %d.", n.ID)))
	return &act.NoOutput{}, nil
}

func editCommand() *cobra.Command {
	cfg := EditConfig{}
	cmd := &cobra.Command{
		Use:   "edit <id> [-title <title>] [-content <text>] [-tags <t1>,<t2>]",
		Short: "Edit a note",
		Args:  cobra.ExactArgs(1),
		RunE: cli.RunE(
			&cfg,
			ParseEditArgs,
			InitDeps,
			EditHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(editFlagSet(cmd.Name(), &cfg))
	return cmd
}

// editFlagSet returns the command-line flags for the EditConfig struct.
func editFlagSet(name string, cfg *EditConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Title, "title", "", "the new title")
	set.StringVar(&cfg.Content, "content", "", "the new body")
	set.StringVar(&cfg.Tags, "tags", "", "comma-separated tags replacing the stored ones")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
