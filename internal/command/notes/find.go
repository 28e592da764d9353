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
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// FindConfig holds all configuration for the notes find command.
type FindConfig struct {
	Tag     string
	Term    string
	Pattern string
	Config  string
}

// Validate ensures the configuration is valid.
func (c FindConfig) Validate() error {
	if c.Tag == "" && c.Term == "" && c.Pattern == "" {
		return errors.New("a tag, search term, or pattern is required")
	}
	return nil
}

// FindHandler contains the business logic for the notes find command.
func FindHandler(ctx context.Context, cfg FindConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	notes, err := env.Client.Notes(ctx, store.NoteQuery{Tag: cfg.Tag, Term: cfg.Term, Pattern: cfg.Pattern})
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		fmt.Fprintln(deps.IO.Out, "No matches.")
		return &act.NoOutput{}, nil
	}
	for _, n := range notes {
		fmt.Fprintln(deps.IO.Out, n.String())
	}
	fmt.Fprintln(deps.IO.Out, yellow(fmt.Sprintf("Found %d notes.", len(notes))))
	return &act.NoOutput{}, nil
}

func findCommand() *cobra.Command {
	cfg := FindConfig{}
	cmd := &cobra.Command{
		Use:   "find [-tag <tag>] [-term <text>] [-pattern <regexp>]",
		Short: "Search notes by tag or text",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[FindConfig],
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
	set.StringVar(&cfg.Tag, "tag", "", "match notes carrying this tag")
	set.StringVar(&cfg.Term, "term", "", "match the title or content against this text")
	set.StringVar(&cfg.Pattern, "pattern", "", "match the title or content against this regular expression")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
