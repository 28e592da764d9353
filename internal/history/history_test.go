// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5/storage/memory"
)

func mustWrite(t *testing.T, fs billy.Filesystem, path, content string) {
	t.Helper()
	if err := util.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%q) = %v", path, err)
	}
}

func TestRecordAndEntries(t *testing.T) {
	ctx := context.Background()
	wt := memfs.New()
	rec, err := Open(memory.NewStorage(), wt)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	{
		entries, err := rec.Entries(ctx, 0)
		if err != nil {
			t.Fatalf("Entries() = %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("Entries() returned %d entries on fresh journal, want 0", len(entries))
		}
	}
	mustWrite(t, wt, "contacts/1/record.json", `{"id":1,"name":"Ada"}`)
	if err := rec.Record(ctx, "contact add: Ada"); err != nil {
		t.Fatalf("Record() = %v", err)
	}
	mustWrite(t, wt, "notes/1/note.json", `{"id":1,"title":"groceries"}`)
	if err := rec.Record(ctx, "note add: groceries"); err != nil {
		t.Fatalf("Record() = %v", err)
	}
	entries, err := rec.Entries(ctx, 0)
	if err != nil {
		t.Fatalf("Entries() = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d entries, want 2", len(entries))
	}
	// Newest first.
	if got, want := entries[0].Message, "note add: groceries"; got != want {
		t.Errorf("entries[0].Message = %q, want %q", got, want)
	}
	if got, want := entries[1].Message, "contact add: Ada"; got != want {
		t.Errorf("entries[1].Message = %q, want %q", got, want)
	}
	for _, e := range entries {
		if len(e.Hash) != 8 {
			t.Errorf("entry hash %q is not abbreviated to 8 chars", e.Hash)
		}
		if e.When.IsZero() {
			t.Errorf("entry %q has zero timestamp", e.Message)
		}
	}
}

func TestRecordCleanWorktree(t *testing.T) {
	ctx := context.Background()
	wt := memfs.New()
	rec, err := Open(memory.NewStorage(), wt)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	mustWrite(t, wt, "contacts/1/record.json", `{"id":1}`)
	if err := rec.Record(ctx, "contact add"); err != nil {
		t.Fatalf("Record() = %v", err)
	}
	// No changes since the last record.
	if err := rec.Record(ctx, "spurious"); err != nil {
		t.Fatalf("Record() on clean worktree = %v", err)
	}
	entries, err := rec.Entries(ctx, 0)
	if err != nil {
		t.Fatalf("Entries() = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Entries() returned %d entries, want 1", len(entries))
	}
}

func TestRecordDeletion(t *testing.T) {
	ctx := context.Background()
	wt := memfs.New()
	rec, err := Open(memory.NewStorage(), wt)
	if err != nil {
		t.Fatalf("Open() = %v", err)
	}
	mustWrite(t, wt, "contacts/1/record.json", `{"id":1}`)
	mustWrite(t, wt, "contacts/2/record.json", `{"id":2}`)
	if err := rec.Record(ctx, "seed"); err != nil {
		t.Fatalf("Record() = %v", err)
	}
	if err := util.RemoveAll(wt, "contacts/2"); err != nil {
		t.Fatalf("RemoveAll() = %v", err)
	}
	if err := rec.Record(ctx, "contact rm: 2"); err != nil {
		t.Fatalf("Record() = %v", err)
	}
	entries, err := rec.Entries(ctx, 1)
	if err != nil {
		t.Fatalf("Entries() = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Entries(limit=1) returned %d entries, want 1", len(entries))
	}
	if got, want := entries[0].Message, "contact rm: 2"; got != want {
		t.Errorf("entries[0].Message = %q, want %q", got, want)
	}
}
