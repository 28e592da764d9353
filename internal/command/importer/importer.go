// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package importer implements the import command.
package importer

import (
	"bytes"
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
	"github.com/cheggaaa/pb"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// Config holds all configuration for the import command.
type Config struct {
	In     string
	Root   string
	Map    string
	Config string
}

// Validate ensures the configuration is valid.
func (c Config) Validate() error {
	if c.In == "" {
		return errors.New("in is required")
	}
	return nil
}

// Deps holds the dependencies for the import command.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps creates the dependencies for the import command.
func InitDeps(ctx context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// foreign reports whether the input should be read as a third-party document
// rather than an attache bundle.
func (c Config) foreign() bool {
	return c.Root != "" || c.Map != ""
}

// Handler contains the business logic for the import command.
func Handler(ctx context.Context, cfg Config, deps *Deps) (*act.NoOutput, error) {
	env, err := base.OpenEnv(cfg.Config)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cfg.In)
	if err != nil {
		return nil, errors.Wrap(err, "reading input file")
	}
	var contacts []book.Record
	var notes []note.Note
	var skipped int
	if cfg.foreign() {
		mapping, err := interop.ParseMapping(cfg.Map)
		if err != nil {
			return nil, err
		}
		contacts, skipped, err = interop.ReadForeign(data, cfg.Root, mapping)
		if err != nil {
			return nil, err
		}
	} else {
		bundle, err := interop.ReadBundle(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		contacts, notes = bundle.Contacts, bundle.Notes
	}
	if len(contacts)+len(notes) == 0 {
		fmt.Fprintln(deps.IO.Out, "Nothing to import.")
		return &act.NoOutput{}, nil
	}
	bar := pb.New(len(contacts) + len(notes))
	bar.Output = deps.IO.Err
	bar.ShowTimeLeft = true
	bar.Start()
	for _, r := range contacts {
		// Stored under a fresh ID so imports never clobber existing records.
		r.ID = 0
		if _, err := env.Client.PutContact(ctx, r); err != nil {
			return nil, errors.Wrap(err, "storing contact")
		}
		bar.Increment()
	}
	for _, n := range notes {
		n.ID = 0
		if _, err := env.Client.PutNote(ctx, n); err != nil {
			return nil, errors.Wrap(err, "storing note")
		}
		bar.Increment()
	}
	bar.Finish()
	batch := uuid.New().String()
	msg := fmt.Sprintf("import %s: %d contacts, %d notes", batch, len(contacts), len(notes))
	if err := env.Recorder.Record(ctx, msg); err != nil {
		return nil, errors.Wrap(err, "recording change")
	}
	fmt.Fprintln(deps.IO.Out, green(fmt.Sprintf("Imported %d contacts and %d notes (batch %s).", len(contacts), len(notes), batch)))
	if skipped > 0 {
		fmt.Fprintln(deps.IO.Out, yellow(fmt.Sprintf("Skipped %d rows.", skipped)))
	}
	return &act.NoOutput{}, nil
}

// Command creates a new cobra command for importing contacts and notes.
func Command() *cobra.Command {
	cfg := Config{}
	cmd := &cobra.Command{
		Use:   "import -in <path> [-root <path>] [-map field=path,...]",
		Short: "Import contacts and notes from a file",
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
	set.StringVar(&cfg.In, "in", "", "the file to import")
	set.StringVar(&cfg.Root, "root", "", "gjson path to the array of rows in a third-party document")
	set.StringVar(&cfg.Map, "map", "", "field=path pairs mapping contact fields to document paths")
	set.StringVar(&cfg.Config, "config", "", "path to the configuration file")
	return set
}
