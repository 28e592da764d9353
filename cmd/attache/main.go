// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/attache-dev/attache/internal/command/birthdays"
	"github.com/attache-dev/attache/internal/command/contacts"
	"github.com/attache-dev/attache/internal/command/export"
	"github.com/attache-dev/attache/internal/command/history"
	"github.com/attache-dev/attache/internal/command/importer"
	"github.com/attache-dev/attache/internal/command/notes"
	"github.com/attache-dev/attache/internal/command/snapshot"
	"github.com/attache-dev/attache/internal/command/tui"
	"github.com/attache-dev/attache/internal/command/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "attache [subcommand]",
	Short: "A terminal assistant for contacts and notes",
	// Silence errors because we will print the error ourselves in main.
	SilenceErrors: true,
	// Don't show usage for every error.
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		contacts.Command(),
		notes.Command(),
		birthdays.Command(),
		export.Command(),
		importer.Command(),
		snapshot.Command(),
		history.Command(),
		tui.Command(),
		version.Command(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
