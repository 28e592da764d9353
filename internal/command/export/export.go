// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package export implements the export command.
package export

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/attache-dev/attache/internal/command/base"
	"github.com/attache-dev/attache/internal/interop"
	"github.com/attache-dev/attache/pkg/act"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/cheggaaa/pb"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	formatJSON   = "json"
	formatSQLite = "sqlite"
)

var green = color.New(color.FgGreen).SprintFunc()

// Config holds all configuration for the export command.
type Config struct {
	Out    string
	Format string
	Config string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.Out == "" {
		return errors.New("out is required")
	}
	switch c.Format {
	case formatJSON, formatSQLite:
	default:
		return errors.Errorf("unknown format %q: want %s or %s", c.Format, formatJSON, formatSQLite)
	}
	return nil
}

// Deps holds the dependencies for the export command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the export command.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

func exportJSON(path string, contacts []book.Record, notes []note.Note) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating bundle file")
	}
	defer f.Close()
	if err := interop.WriteBundle(f, contacts, notes); err != nil {
		return err
	}
	return errors.Wrap(f.Close(), "closing bundle file")
}

func exportSQLite(ctx context.Context, deps *Deps, path string, contacts []book.Record, notes []note.Note) error {
	client, err := store.NewSQLiteClient(path)
	if err != nil {
		return err
	}
	defer client.Close()
	bar := pb.New(len(contacts) + len(notes))
	bar.Output = deps.IO.Err
	bar.ShowTimeLeft = true
	bar.Start()
	for _, r := range contacts {
		if _, err := client.PutContact(ctx, r); err != nil {
			return errors.Wrapf(err, "storing contact %d", r.ID)
		}
		bar.Increment()
	}
	for _, n := range notes {
		if _, err := client.PutNote(ctx, n); err != nil {
			return errors.Wrapf(err, "storing note %d", n.ID)
		}
		bar.Increment()
	}
	bar.Finish()
	return nil
}

// Handler contains the business logic for the export command.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	contacts, err := env.Client.Contacts(ctx, store.Query{})
	if err != nil {
		return nil, err
	}
	notes, err := env.Client.Notes(ctx, store.NoteQuery{})
	if err != nil {
		return nil, err
	}
	switch cfg.Format {
	case formatJSON:
		err = exportJSON(cfg.Out, contacts, notes)
	case formatSQLite:
		err = exportSQLite(ctx, deps, cfg.Out, contacts, notes)
	}
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Exported %d contacts and %d notes to %s.", len(contacts), len(notes), cfg.Out)))
	return &act.NoOutput{}, nil
}

// Command creates a new cobra command for exporting the data home.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "export -out <path> [-format json|sqlite]",
		Short: "Export contacts and notes to a file",
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
	set.StringVar(&cfg.Out, "out", "", "where to write the export")
	set.StringVar(&cfg.Format, "format", formatJSON, "export format, json or sqlite")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
