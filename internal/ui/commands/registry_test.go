// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"testing"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
)

func TestRegistryHotkeys(t *testing.T) {
	reg := &Registry{}
	if err := reg.AddGlobals(GlobalCmd{Short: "refresh", Hotkey: 'r', Func: func(context.Context) {}}); err != nil {
		t.Fatalf("AddGlobals: %v", err)
	}
	if err := reg.AddContacts(ContactCmd{Short: "edit", Hotkey: 'e', Func: func(context.Context, book.Record) {}}); err != nil {
		t.Fatalf("AddContacts: %v", err)
	}
	// Note commands may reuse contact hotkeys.
	if err := reg.AddNotes(NoteCmd{Short: "edit", Hotkey: 'e', Func: func(context.Context, note.Note) {}}); err != nil {
		t.Fatalf("AddNotes with contact hotkey: %v", err)
	}
	// But nothing may reuse a global hotkey.
	if err := reg.AddContacts(ContactCmd{Short: "remove", Hotkey: 'r', Func: func(context.Context, book.Record) {}}); err == nil {
		t.Fatal("AddContacts with global hotkey: expected error")
	}
	if err := reg.AddNotes(NoteCmd{Short: "remove", Hotkey: 'r', Func: func(context.Context, note.Note) {}}); err == nil {
		t.Fatal("AddNotes with global hotkey: expected error")
	}
	if err := reg.AddGlobals(GlobalCmd{Short: "restart", Hotkey: 'r', Func: func(context.Context) {}}); err == nil {
		t.Fatal("AddGlobals with duplicate hotkey: expected error")
	}
}

func TestRegistryRollback(t *testing.T) {
	reg := &Registry{}
	if err := reg.AddContacts(ContactCmd{Short: "edit", Hotkey: 'e', Func: func(context.Context, book.Record) {}}); err != nil {
		t.Fatalf("AddContacts: %v", err)
	}
	err := reg.AddContacts(
		ContactCmd{Short: "details", Hotkey: 'm', Func: func(context.Context, book.Record) {}},
		ContactCmd{Short: "also edit", Hotkey: 'e', Func: func(context.Context, book.Record) {}},
	)
	if err == nil {
		t.Fatal("AddContacts with duplicate hotkey: expected error")
	}
	// A failed add leaves the registry untouched, including the valid entries
	// of the batch.
	if got := len(reg.ContactCommands()); got != 1 {
		t.Fatalf("ContactCommands: got %d commands, want 1", got)
	}
}

func TestApplyContactForm(t *testing.T) {
	prior := book.Record{ID: 3, Name: "Ada Lovelace", Phones: []book.Phone{"111222333"}}
	t.Run("empty fields keep prior values", func(t *testing.T) {
		got, err := applyContactForm(prior, map[string]string{})
		if err != nil {
			t.Fatalf("applyContactForm: %v", err)
		}
		if got.Name != prior.Name {
			t.Errorf("Name: got %q, want %q", got.Name, prior.Name)
		}
		if len(got.Phones) != 1 || got.Phones[0] != "111222333" {
			t.Errorf("Phones: got %v, want prior phones", got.Phones)
		}
	})
	t.Run("phone list replaces the prior set", func(t *testing.T) {
		got, err := applyContactForm(prior, map[string]string{"Phones": "444555666, 777888999"})
		if err != nil {
			t.Fatalf("applyContactForm: %v", err)
		}
		if len(got.Phones) != 2 || got.Phones[0] != "444555666" || got.Phones[1] != "777888999" {
			t.Errorf("Phones: got %v", got.Phones)
		}
	})
	t.Run("invalid phone rejected", func(t *testing.T) {
		if _, err := applyContactForm(prior, map[string]string{"Phones": "555"}); err == nil {
			t.Fatal("applyContactForm: expected error")
		}
	})
	t.Run("new record needs a name", func(t *testing.T) {
		if _, err := applyContactForm(book.Record{}, map[string]string{"Phones": "444555666"}); err == nil {
			t.Fatal("applyContactForm: expected error")
		}
	})
	t.Run("address assembled from parts", func(t *testing.T) {
		got, err := applyContactForm(prior, map[string]string{"City": "Springfield", "Country": "USA"})
		if err != nil {
			t.Fatalf("applyContactForm: %v", err)
		}
		if got.Address == nil || got.Address.City != "Springfield" || got.Address.Country != "USA" {
			t.Errorf("Address: got %+v", got.Address)
		}
	})
}
