// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package birthdays implements the upcoming birthdays command.
package birthdays

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var yellow = color.New(color.FgYellow).SprintFunc()

// Config holds all configuration for the birthdays command.
type Config struct {
	Within int
	Config string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Within <= 0 {
		return errors.New("within must be positive")
	}
	return nil
}

// Deps holds the dependencies for the birthdays command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the birthdays command.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// when phrases the days remaining to a birthday.
func when(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// Handler contains the business logic for the birthdays command.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	records, err := env.Client.Contacts(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	upcoming := store.UpcomingBirthdays(records, time.Now(), cfg.Within)
	if len(upcoming) == 0 {
		fmt.Fprintln(deps.IO.Out, fmt.Sprintf("No birthdays in the next %d days.", cfg.Within))
		return &act.NoOutput{}, nil
	}
	for _, u := range upcoming {
		fmt.Fprintln(deps.IO.Out, fmt.Sprintf("%s has a birthday %s (%s).", u.Record.Name, when(u.Days), u.Record.Birthday))
	}
	fmt.Fprintln(deps.IO.Out, yellow(fmt.Sprintf("Found %d birthdays in the next %d days.", len(upcoming), cfg.Within)))
	return &act.NoOutput{}, nil
}

// Command creates a new cobra command for listing upcoming birthdays.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "birthdays [-within N]",
		Short: "List contacts with a birthday coming up",
		Args:  cobra.NoArgs,
		RunE: cli.RunE(
			&cfg,
			cli.SkipArgs[Config],
			InitDeps,
			Handler,
		),
	}
	cmd.Flags().AddGoFlagSet(flagSet(cmd.Name(), &cfg))
	return cmd
}

// flagSet returns the command-line flags for the Config struct.
func flagSet(name string, cfg *Config) *flag.FlagSet {
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	set.IntVar(&cfg.Within, "within", 7, "how many days ahead to look")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
