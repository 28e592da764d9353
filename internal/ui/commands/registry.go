// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the operations the terminal UI offers on contacts,
// notes, and the application itself.
package commands

import (
	"context"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/pkg/errors"
)

// ContactCmd acts on the selected contact.
type ContactCmd struct {
	Short  string
	Hotkey rune
	Func   func(context.Context, book.Record)
}

// NoteCmd acts on the selected note.
type NoteCmd struct {
	Short  string
	Hotkey rune
	Func   func(context.Context, note.Note)
}

// GlobalCmd acts without a selection.
type GlobalCmd struct {
	Short  string
	Hotkey rune
	Func   func(context.Context)
}

// Registry holds the UI's command set and keeps its hotkeys unambiguous.
type Registry struct {
	contactCmds []ContactCmd
	noteCmds    []NoteCmd
	globalCmds  []GlobalCmd
}

// addChecked appends cmds to dst, restoring the prior slice if the combined
// registry no longer validates.
func addChecked[T any](reg *Registry, dst *[]T, cmds []T) error {
	old := *dst
	*dst = append(*dst, cmds...)
	if err := reg.Validate(); err != nil {
		*dst = old
		return err
	}
	return nil
}

func (reg *Registry) AddGlobals(cmds ...GlobalCmd) error {
	return addChecked(reg, &reg.globalCmds, cmds)
}

func (reg *Registry) AddContacts(cmds ...ContactCmd) error {
	return addChecked(reg, &reg.contactCmds, cmds)
}

func (reg *Registry) AddNotes(cmds ...NoteCmd) error {
	return addChecked(reg, &reg.noteCmds, cmds)
}

// claim records a hotkey in seen unless it is already held there or in any
// of the taken sets. Hotkey 0 means none.
func claim(hotkey rune, short string, seen map[rune]bool, taken ...map[rune]bool) error {
	if hotkey == 0 {
		return nil
	}
	for _, m := range taken {
		if m[hotkey] {
			return errors.Errorf("duplicate hotkey: %c (%s)", hotkey, short)
		}
	}
	if seen[hotkey] {
		return errors.Errorf("duplicate hotkey: %c (%s)", hotkey, short)
	}
	seen[hotkey] = true
	return nil
}

// Validate rejects duplicate hotkeys. Contact and note hotkeys may coincide
// with each other (only one kind of record is ever selected) but never with a
// global hotkey.
func (reg *Registry) Validate() error {
	globals := make(map[rune]bool)
	for _, cmd := range reg.globalCmds {
		if err := claim(cmd.Hotkey, cmd.Short, globals); err != nil {
			return err
		}
	}
	contacts := make(map[rune]bool)
	for _, cmd := range reg.contactCmds {
		if err := claim(cmd.Hotkey, cmd.Short, contacts, globals); err != nil {
			return err
		}
	}
	notes := make(map[rune]bool)
	for _, cmd := range reg.noteCmds {
		if err := claim(cmd.Hotkey, cmd.Short, notes, globals); err != nil {
			return err
		}
	}
	return nil
}

func (reg *Registry) ContactCommands() []ContactCmd {
	return reg.contactCmds
}

func (reg *Registry) NoteCommands() []NoteCmd {
	return reg.noteCmds
}

func (reg *Registry) GlobalCommands() []GlobalCmd {
	return reg.globalCmds
}
