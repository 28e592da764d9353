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
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ListConfig holds all configuration for the contacts list command.
type ListConfig struct {
	Page     int
	PageSize int
	Config   string
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

// ListHandler contains the business logic for the contacts list command.
func ListHandler(ctx context.Context, cfg ListConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	records, err := env.Client.Contacts(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		fmt.Fprintln(deps.IO.Out, "The address book is empty.")
		return &act.NoOutput{}, nil
	}
	// A zero page size falls back to the configured one.
	size := cfg.PageSize
	if size == 0 {
		size = env.Config.PageSize
	}
	page := store.Page(records, size, cfg.Page)
	if len(page) == 0 {
		return nil, errors.Errorf("page %d is out of range", cfg.Page)
	}
	for _, r := range page {
		fmt.Fprintln(deps.IO.Out, r.String())
	}
	pages := (len(records) + size - 1) / size
	fmt.Fprintln(deps.IO.Out, yellow(fmt.Sprintf("Page %d of %d (%d contacts)", cfg.Page, pages, len(records))))
	return &act.NoOutput{}, nil
}

func listCommand() *cobra.Command {
	cfg := ListConfig{}
	cmd := &cobra.Command{
		Use:   "list [-page N] [-page-size N]",
		Short: "List contacts page by page",
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
	set.IntVar(&cfg.Page, "page", 1, "which page of contacts to show")
	set.IntVar(&cfg.PageSize, "page-size", 0, "contacts per page (defaults to the configured page size)")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
