// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package contacts

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// EditConfig holds all configuration for the contacts edit command. Unset
// flags keep the stored values.
type EditConfig struct {
	ID         int
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

// EditHandler contains the business logic for the contacts edit command.
func EditHandler(ctx context.Context, cfg EditConfig, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	records, err := env.Client.Contacts(ctx, store.Query{IDs: []int{cfg.ID}})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.Errorf("no contact with ID %d", cfg.ID)
	}
	r := records[0]
	if cfg.Name != "" {
		name, err := book.NewName(cfg.Name)
		if err != nil {
			return nil, err
		}
		r.Rename(name)
	}
	// A phone or email list replaces the whole stored set.
	if cfg.Phones != "" {
		phones, err := parsePhones(cfg.Phones)
		if err != nil {
			return nil, err
		}
		r.Phones = phones
	}
	if cfg.Emails != "" {
		emails, err := parseEmails(cfg.Emails)
		if err != nil {
			return nil, err
		}
		r.Emails = emails
	}
	if cfg.Birthday != "" {
		b, err := book.NewBirthday(cfg.Birthday)
		if err != nil {
			return nil, err
		}
		r.SetBirthday(b)
	}
	mergeAddress(&r, cfg.Street, cfg.City, cfg.PostalCode, cfg.Country)
	if _, err := env.Client.PutContact(ctx, r); err != nil {
		return nil, errors.Wrap(err, "storing contact")
	}
	if err := env.Recorder.Record(ctx, fmt.Sprintf("contact edit: %d", r.ID)); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Updated contact %d.", r.ID)))
	return &act.NoOutput{}, nil
}

func editCommand() *cobra.Command {
	cfg := EditConfig{}
	cmd := &cobra.Command{
		Use:   "edit <id> [-name <name>] [-phones <p1>,<p2>] [-emails <e1>,<e2>] [-birthday YYYY-MM-DD]",
		Short: "Edit a contact, keeping any field not flagged",
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
	set.StringVar(&cfg.Name, "name", "", "new display name")
	set.StringVar(&cfg.Phones, "phones", "", "comma-separated phone numbers replacing the stored set")
	set.StringVar(&cfg.Emails, "emails", "", "comma-separated email addresses replacing the stored set")
	set.StringVar(&cfg.Birthday, "birthday", "", "birthday in YYYY-MM-DD form")
	set.StringVar(&cfg.Street, "street", "", "street of the postal address")
	set.StringVar(&cfg.City, "city", "", "city of the postal address")
	set.StringVar(&cfg.PostalCode, "postal-code", "", "postal code of the address")
	set.StringVar(&cfg.Country, "country", "", "country of the postal address")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
