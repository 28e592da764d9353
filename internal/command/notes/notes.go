// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package notes implements the notebook commands.
package notes

import (
	"context"

	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// Deps holds dependencies for the notes commands.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Command creates the notes command tree.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage the notebook",
	}
	cmd.AddCommand(addCommand(), listCommand(), showCommand(), findCommand(), editCommand(), rmCommand(), tagsCommand())
	return cmd
}
