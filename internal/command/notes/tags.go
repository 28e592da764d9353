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
	"github.com/spf13/cobra"
)

// TagsConfig holds all configuration for the notes tags command.
type TagsConfig struct {
	Config string
}

// Validate ensures the configuration is valid.
func (c TagsConfig) Validate() error {
	return nil
}

// TagsHandler contains the business logic for the notes tags command.
func TagsHandler(ctx context.Context, cfg TagsConfig, deps *Deps) (*act.NoOutput, error) {
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
	for _, g := range store.GroupByTag(notes) {
		tag := g.Tag
		if tag == "" {
			tag = "(untagged)"
		}
		fmt.Fprintln(deps.IO.Out, fmt.Sprintf("%4d %s", g.Count, tag))
	}
	return &act.NoOutput{}, nil
}

func tagsCommand() *cobra.Command {
	cfg := TagsConfig{}
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags with note counts",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[TagsConfig],
			InitDeps,
			TagsHandler,
		),
	}
	cmd.Flags().AddGoFlagSet(tagsFlagSet(cmd.Name(), &cfg))
	return cmd
}

// tagsFlagSet returns the command-line flags for the TagsConfig struct.
func tagsFlagSet(name string, cfg *TagsConfig) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
