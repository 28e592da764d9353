// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package layout names the directories that make up the attache data home.
package layout

const (
	ContactsDir  = "contacts"    // One directory per contact record.
	NotesDir     = "notes"       // One directory per note.
	SnapshotsDir = "snapshots"   // Snapshot metadata and copied record files.
	ConfigFile   = "config.yaml" // Default configuration file location.
)
