// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/attache-dev/attache/internal/localfiles"
	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/store"
)

func testDeps() (*Deps, *bytes.Buffer) {
	var out bytes.Buffer
	return &Deps{IO: cli.IO{Out: &out, Err: &out}}, &out
}

func homeClient(t *testing.T, home string) *store.FilesystemClient {
	t.Helper()
	fs, err := localfiles.DataFS(home)
	if err != nil {
		t.Fatalf("DataFS() error = %v", err)
	}
	return store.NewFilesystemClient(fs)
}

func TestCreateListRestore(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ATTACHE_HOME", home)
	ctx := context.Background()
	client := homeClient(t, home)
	if _, err := client.PutContact(ctx, book.Record{Name: "Anna Nowak"}); err != nil {
		t.Fatalf("PutContact() error = %v", err)
	}

	deps, out := testDeps()
	if _, err := CreateHandler(ctx, CreateConfig{Label: "before cleanup"}, deps); err != nil {
		t.Fatalf("CreateHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "(1 contacts, 0 notes)") {
		t.Errorf("CreateHandler() output = %q, want counts", out.String())
	}

	snaps, err := client.Snapshots(ctx)
	if err != nil {
		t.Fatalf("Snapshots() error = %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("Snapshots() returned %d snapshots, want 1", len(snaps))
	}

	deps, out = testDeps()
	if _, err := ListHandler(ctx, ListConfig{}, deps); err != nil {
		t.Fatalf("ListHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), snaps[0].ID[:8]) || !strings.Contains(out.String(), "before cleanup") {
		t.Errorf("ListHandler() output = %q, want short ID and label", out.String())
	}

	if err := client.DeleteContact(ctx, 1); err != nil {
		t.Fatalf("DeleteContact() error = %v", err)
	}

	// Restoring by short prefix brings the contact back.
	deps, _ = testDeps()
	if _, err := RestoreHandler(ctx, RestoreConfig{ID: snaps[0].ID[:8]}, deps); err != nil {
		t.Fatalf("RestoreHandler() error = %v", err)
	}
	records, err := client.Contacts(ctx, store.Query{})
	if err != nil {
		t.Fatalf("Contacts() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Anna Nowak" {
		t.Errorf("Contacts() after restore = %+v, want Anna Nowak back", records)
	}
}

func TestListEmpty(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	deps, out := testDeps()
	if _, err := ListHandler(context.Background(), ListConfig{}, deps); err != nil {
		t.Fatalf("ListHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "No snapshots yet.") {
		t.Errorf("ListHandler() output = %q, want empty notice", out.String())
	}
}

func TestRestoreUnknownID(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	deps, _ := testDeps()
	if _, err := RestoreHandler(context.Background(), RestoreConfig{ID: "deadbeef"}, deps); err == nil {
		t.Error("RestoreHandler() expected error for unknown snapshot")
	}
}

func TestParseRestoreArgs(t *testing.T) {
	var cfg RestoreConfig
	if err := ParseRestoreArgs(&cfg, []string{"deadbeef"}); err != nil {
		t.Fatalf("ParseRestoreArgs() error = %v", err)
	}
	if cfg.ID != "deadbeef" {
		t.Errorf("ParseRestoreArgs() ID = %q, want deadbeef", cfg.ID)
	}
	if err := ParseRestoreArgs(&cfg, nil); err == nil {
		t.Error("ParseRestoreArgs() expected error for missing argument")
	}
}
