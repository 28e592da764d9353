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
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ListConfig holds all configuration for the notes list command.
type ListConfig struct {
	Page      int
	PageSize  int
	SortByTag string
	Config    string
}

// Validate ensures the configuration is valid.
func (c ListConfig) Validate() error {
	if c.Page <= 0 {
		return errors.New("page must be positive")
	}
	if c.PageSize < 0 {
		return errors.New("page-size must not be negative")
	}
	return nil
}

// ListHandler contains the business logic for the notes list command.
func ListHandler(ctx context.Context, cfg ListConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	notes, err := env.Client.Notes(ctx, store.NoteQuery{})
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		fmt.Fprintln(deps.IO.Out, "The notebook is empty.")
		return &act.NoOutput{}, nil
	}
	if cfg.SortByTag != "" {
		var ok bool
		notes, ok = note.SortByTag(notes, cfg.SortByTag)
		if !ok {
			fmt.Fprintln(deps.IO.Out, fmt.Sprintf("No notes carry the tag %q.", cfg.SortByTag))
		}
	}
	// A zero page size falls back to the configured one.
	size := cfg.PageSize
	if size == 0 {
		size = env.Config.PageSize
	}
	page := store.Page(notes, size, cfg.Page)
	if len(page) == 0 {
		return nil, errors.Errorf("page %d is out of range", cfg.Page)
	}
	for _, n := range page {
		fmt.Fprintln(deps.IO.Out, n.String())
	}
	pages := (len(notes) + size - 1) / size
	fmt.Fprintln(deps.IO.Out, yellow(fmt.Sprintf("Page %d of %d (%d notes)", cfg.Page, pages, len(notes))))
	return &act.NoOutput{}, nil
}

func listCommand() *cobra.Command {
	cfg := ListConfig{}
	cmd := &cobra.Command{
		Use:   "list [-page N] [-page-size N] [-sort-by-tag <tag>]",
		Short: "List notes page by page",
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
	set.IntVar(&cfg.Page, "page", 1, "which page of notes to show")
	set.IntVar(&cfg.PageSize, "page-size", 0, "notes per page (defaults to the configured page size)")
	set.StringVar(&cfg.SortByTag, "sort-by-tag", "", "order notes carrying this tag first")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
