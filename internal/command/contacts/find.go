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

// FindConfig holds all configuration for the contacts find command.
type FindConfig struct {
	Term    string
	Pattern string
	Config  string
}

// Validate ensures the configuration is valid.
func (c FindConfig) Validate() error {
	if c.Term == "" && c.Pattern == "" {
		return errors.New("a search term or pattern is required")
	}
	return nil
}

// ParseFindArgs parses positional arguments into the FindConfig.
func ParseFindArgs(cfg *FindConfig, args []string) error {
	if len(args) > 1 {
		return errors.Errorf("expected at most 1 argument (term), got %d", len(args))
	}
	if len(args) == 1 {
		cfg.Term = args[0]
	}
	return nil
}

// FindHandler contains the business logic for the contacts find command.
func FindHandler(ctx context.Context, cfg FindConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	records, err := env.Client.Contacts(ctx, store.Query{Term: cfg.Term, Pattern: cfg.Pattern})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		fmt.Fprintln(deps.IO.Out, "No matches.")
		return &act.NoOutput{}, nil
	}
	for _, r := range records {
		fmt.Fprintln(deps.IO.Out, r.String())
	}
	fmt.Fprintln(deps.IO.Out, yellow(fmt.Sprintf("Found %d contacts.", len(records))))
	return &act.NoOutput{}, nil
}

func findCommand() *cobra.Command {
	cfg := FindConfig{}
	cmd := &cobra.Command{
		Use:   "find [<term>] [-pattern <regex>]",
		Short: "Find contacts by name, phone, or email",
		Args:  cobra.MaximumNArgs(1),
		RunE: cli.RunE(
			&cfg,
			ParseFindArgs,
			InitDeps,
			FindHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(findFlagSet(cmd.Name(), &cfg))
	return cmd
}

// findFlagSet returns the command-line flags for the FindConfig struct.
func findFlagSet(name string, cfg *FindConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Pattern, "pattern", "", "filter contacts matching this regex pattern")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
