// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"testing"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/go-git/go-billy/v5/memfs"
)

func TestSnapshotCreateListRestore(t *testing.T) {
	ctx := context.Background()
	f := NewFilesystemClient(memfs.New())
	mustPutContact(t, f, book.Record{Name: "Jan Kowalski"})
	mustPutNote(t, f, note.Note{Title: "keep me"})

	snap, err := f.CreateSnapshot(ctx, "before experiment")
	if err != nil {
		t.Fatalf("CreateSnapshot() error = %v", err)
	}
	if snap.Contacts != 1 || snap.Notes != 1 {
		t.Errorf("CreateSnapshot() counts = %d contacts, %d notes, want 1 and 1", snap.Contacts, snap.Notes)
	}
	if snap.Label != "before experiment" {
		t.Errorf("CreateSnapshot() label = %q", snap.Label)
	}

	// Mutate the live data, then restore.
	if err := f.DeleteContact(ctx, 1); err != nil {
		t.Fatalf("DeleteContact() error = %v", err)
	}
	mustPutNote(t, f, note.Note{Title: "drop me"})

	snaps, err := f.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots() error = %v", err)
	}
	if len(snaps) != 1 || snaps[0].ID != snap.ID {
		t.Fatalf("Snapshots() = %v, want the one created", snaps)
	}

	// Restore by ID prefix.
	restored, err := f.RestoreSnapshot(ctx, snap.ID[:8])
	if err != nil {
		t.Fatalf("RestoreSnapshot() error = %v", err)
	}
	if restored.ID != snap.ID {
		t.Errorf("RestoreSnapshot() ID = %q, want %q", restored.ID, snap.ID)
	}
	contacts, err := f.Contacts(ctx, Query{})
	if err != nil {
		t.Fatalf("Contacts() error = %v", err)
	}
	if len(contacts) != 1 || contacts[0].Name != "Jan Kowalski" {
		t.Errorf("Contacts() after restore = %v, want the snapshotted record", contacts)
	}
	notes, err := f.Notes(ctx, NoteQuery{})
	if err != nil {
		t.Fatalf("Notes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "keep me" {
		t.Errorf("Notes() after restore = %v, want only the snapshotted note", notes)
	}
}

func TestRestoreSnapshotAbsent(t *testing.T) {
	f := NewFilesystemClient(memfs.New())
	if _, err := f.RestoreSnapshot(context.Background(), "does-not-exist"); err == nil {
		t.Error("RestoreSnapshot() expected error for unknown ID")
	}
	if _, err := f.RestoreSnapshot(context.Background(), ""); err == nil {
		t.Error("RestoreSnapshot() expected error for empty ID")
	}
}
