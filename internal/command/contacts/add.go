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
	"github.com/attache-dev/attache/pkg/book"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// AddConfig holds all configuration for the contacts add command.
type AddConfig struct {
	Name       string
	Phones     string
	Emails     string
	Birthday   string
	Street     string
	City       string
	PostalCode string
	Country    string
	Config     string
}

// Validate ensures the configuration is valid.
func (c AddConfig) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// ParseAddArgs parses positional arguments into the AddConfig.
func ParseAddArgs(cfg *AddConfig, args []string) error {
	if len(args) != 1 {
		return errors.Errorf("expected exactly 1 argument (name), got %d", len(args))
	}
	cfg.Name = args[0]
	return nil
}

// AddHandler contains the business logic for the contacts add command.
func AddHandler(ctx context.Context, cfg AddConfig, deps *Deps) (*act.NoOutput, error) {
	name, err := book.NewName(cfg.Name)
	if err != nil {
		return nil, err
	}
	r := book.NewRecord(name)
	phones, err := parsePhones(cfg.Phones)
	if err != nil {
		return nil, err
	}
	for _, p := range phones {
		r.AddPhone(p)
	}
	emails, err := parseEmails(cfg.Emails)
	if err != nil {
		return nil, err
	}
	for _, e := range emails {
		r.AddEmail(e)
	}
	if cfg.Birthday != "" {
		b, err := book.NewBirthday(cfg.Birthday)
		if err != nil {
			return nil, err
		}
		r.SetBirthday(b)
	}
	mergeAddress(&r, cfg.Street, cfg.City, cfg.PostalCode, cfg.Country)
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	stored, err := env.Client.PutContact(ctx, r)
	if err != nil {
		return nil, errors.Wrap(err, "storing contact")
	}
	if err := env.Recorder.Record(ctx, fmt.Sprintf("contact add: %s", stored.Name)); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Added contact %s with ID %d.", stored.Name, stored.ID)))
	return &act.NoOutput{}, nil
}

func addCommand() *cobra.Command {
	cfg := AddConfig{}
	cmd := &cobra.Command{
		Use:   "add <name> [-phones <p1>,<p2>] [-emails <e1>,<e2>] [-birthday YYYY-MM-DD]",
		Short: "Add a contact",
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
	set.StringVar(&cfg.Phones, "phones", "", "comma-separated nine-digit phone numbers")
	set.StringVar(&cfg.Emails, "emails", "", "comma-separated email addresses")
	set.StringVar(&cfg.Birthday, "birthday", "", "birthday in YYYY-MM-DD form")
	set.StringVar(&cfg.Street, "street", "", "street of the postal address")
	set.StringVar(&cfg.City, "city", "", "city of the postal address")
	set.StringVar(&cfg.PostalCode, "postal-code", "", "postal code of the address")
	set.StringVar(&cfg.Country, "country", "", "country of the postal address")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
