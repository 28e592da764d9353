// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package contacts

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/google/go-cmp/cmp"
)

func testDeps() (*Deps, *bytes.Buffer) {
	var out bytes.Buffer
	return &Deps{IO: cli.IO{Out: &out, Err: &out}}, &out
}

func mustAdd(t *testing.T, cfg AddConfig) {
	t.Helper()
	deps, _ := testDeps()
	if _, err := AddHandler(context.Background(), cfg, deps); err != nil {
		t.Fatalf("AddHandler() error = %v", err)
	}
}

func TestAddListShowRoundTrip(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	ctx := context.Background()
	mustAdd(t, AddConfig{Name: "Anna Nowak", Phones: "123456789", Emails: "anna@example.com", Birthday: "1985-11-02"})

	deps, out := testDeps()
	if _, err := ListHandler(ctx, ListConfig{Page: 1}, deps); err != nil {
		t.Fatalf("ListHandler() error = %v", err)
	}
	for _, want := range []string{"Anna Nowak", "123456789", "Page 1 of 1 (1 contacts)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("ListHandler() output %q missing %q", out.String(), want)
		}
	}

	deps, out = testDeps()
	if _, err := ShowHandler(ctx, ShowConfig{ID: 1}, deps); err != nil {
		t.Fatalf("ShowHandler() error = %v", err)
	}
	for _, want := range []string{"Anna Nowak", "anna@example.com", "1985-11-02"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("ShowHandler() output %q missing %q", out.String(), want)
		}
	}
}

func TestShowUnknownID(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	deps, _ := testDeps()
	if _, err := ShowHandler(context.Background(), ShowConfig{ID: 42}, deps); err == nil {
		t.Error("ShowHandler() expected error for unknown ID")
	}
}

func TestFindByTermAndPattern(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	ctx := context.Background()
	mustAdd(t, AddConfig{Name: "Anna Nowak", Phones: "123456789"})
	mustAdd(t, AddConfig{Name: "Jan Kowalski", Emails: "jan@example.com"})

	deps, out := testDeps()
	if _, err := FindHandler(ctx, FindConfig{Term: "nowak"}, deps); err != nil {
		t.Fatalf("FindHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "Anna Nowak") || strings.Contains(out.String(), "Kowalski") {
		t.Errorf("FindHandler(term) output = %q, want only Anna Nowak", out.String())
	}

	deps, out = testDeps()
	if _, err := FindHandler(ctx, FindConfig{Pattern: "jan@.*com"}, deps); err != nil {
		t.Fatalf("FindHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "Jan Kowalski") || !strings.Contains(out.String(), "Found 1 contacts.") {
		t.Errorf("FindHandler(pattern) output = %q, want Jan Kowalski", out.String())
	}

	deps, out = testDeps()
	if _, err := FindHandler(ctx, FindConfig{Term: "nobody"}, deps); err != nil {
		t.Fatalf("FindHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "No matches.") {
		t.Errorf("FindHandler(no match) output = %q, want No matches.", out.String())
	}
}

func TestEditReplacesListsAndKeepsTheRest(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	ctx := context.Background()
	mustAdd(t, AddConfig{Name: "Anna Nowak", Phones: "123456789,987654321", Birthday: "1985-11-02"})

	deps, _ := testDeps()
	if _, err := EditHandler(ctx, EditConfig{ID: 1, Phones: "555666777"}, deps); err != nil {
		t.Fatalf("EditHandler() error = %v", err)
	}

	deps, out := testDeps()
	if _, err := ShowHandler(ctx, ShowConfig{ID: 1}, deps); err != nil {
		t.Fatalf("ShowHandler() error = %v", err)
	}
	if strings.Contains(out.String(), "123456789") {
		t.Errorf("ShowHandler() output %q still has the replaced phone", out.String())
	}
	for _, want := range []string{"555666777", "Anna Nowak", "1985-11-02"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("ShowHandler() output %q missing %q", out.String(), want)
		}
	}
}

func TestRmDeletes(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	ctx := context.Background()
	mustAdd(t, AddConfig{Name: "Anna Nowak"})

	deps, _ := testDeps()
	if _, err := RmHandler(ctx, RmConfig{ID: 1}, deps); err != nil {
		t.Fatalf("RmHandler() error = %v", err)
	}

	deps, out := testDeps()
	if _, err := ListHandler(ctx, ListConfig{Page: 1}, deps); err != nil {
		t.Fatalf("ListHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "The address book is empty.") {
		t.Errorf("ListHandler() output = %q, want empty book message", out.String())
	}
}

func TestListPaging(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	ctx := context.Background()
	for _, name := range []string{"Anna Nowak", "Jan Kowalski", "Piotr Wozniak"} {
		mustAdd(t, AddConfig{Name: name})
	}

	deps, out := testDeps()
	if _, err := ListHandler(ctx, ListConfig{Page: 2, PageSize: 2}, deps); err != nil {
		t.Fatalf("ListHandler() error = %v", err)
	}
	if !strings.Contains(out.String(), "Page 2 of 2 (3 contacts)") {
		t.Errorf("ListHandler() output = %q, want second page footer", out.String())
	}

	deps, _ = testDeps()
	if _, err := ListHandler(ctx, ListConfig{Page: 3, PageSize: 2}, deps); err == nil {
		t.Error("ListHandler() expected out of range error")
	}
}

func TestAddRejectsInvalidFields(t *testing.T) {
	t.Setenv("ATTACHE_HOME", t.TempDir())
	for _, tc := range []struct {
		name string
		cfg  AddConfig
	}{
		{name: "short phone", cfg: AddConfig{Name: "Anna", Phones: "555"}},
		{name: "malformed email", cfg: AddConfig{Name: "Anna", Emails: "not-an-email"}},
		{name: "malformed birthday", cfg: AddConfig{Name: "Anna", Birthday: "02.11.1985"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			deps, _ := testDeps()
			if _, err := AddHandler(context.Background(), tc.cfg, deps); err == nil {
				t.Error("AddHandler() expected validation error")
			}
		})
	}
}

func TestParseAddArgs(t *testing.T) {
	var cfg AddConfig
	if err := ParseAddArgs(&cfg, []string{"Anna Nowak"}); err != nil {
		t.Fatalf("ParseAddArgs() error = %v", err)
	}
	if cfg.Name != "Anna Nowak" {
		t.Errorf("ParseAddArgs() Name = %q, want Anna Nowak", cfg.Name)
	}
	if err := ParseAddArgs(&cfg, nil); err == nil {
		t.Error("ParseAddArgs() expected error for missing argument")
	}
}

func TestMergeAddress(t *testing.T) {
	r := book.NewRecord("Anna")
	mergeAddress(&r, "", "", "", "")
	if r.Address != nil {
		t.Fatal("mergeAddress() with no parts set an address")
	}
	mergeAddress(&r, "Polna 1", "Warszawa", "", "")
	mergeAddress(&r, "", "", "00-625", "Poland")
	want := &book.Address{Street: "Polna 1", City: "Warszawa", PostalCode: "00-625", Country: "Poland"}
	if !cmp.Equal(r.Address, want) {
		t.Errorf("mergeAddress() diff: %v", cmp.Diff(r.Address, want))
	}
}
