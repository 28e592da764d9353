// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package interop moves contacts and notes in and out of attache.
package interop

import (
	"encoding/json"
	"io"
	"time"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/pkg/errors"
)

// Bundle is the portable JSON export format.
type Bundle struct {
	Metadata Metadata      `json:"metadata"`
	Contacts []book.Record `json:"contacts,omitempty"`
	Notes    []note.Note   `json:"notes,omitempty"`
}

// Metadata describes an export.
type Metadata struct {
	Exported time.Time `json:"exported"`
	Contacts int       `json:"contacts"`
	Notes    int       `json:"notes"`
}

// WriteBundle writes contacts and notes as an indented JSON bundle.
func WriteBundle(w io.Writer, contacts []book.Record, notes []note.Note) error {
	b := Bundle{
		Metadata: Metadata{Exported: time.Now().UTC(), Contacts: len(contacts), Notes: len(notes)},
		Contacts: contacts,
		Notes:    notes,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(b), "encoding bundle")
}

// ReadBundle decodes a bundle written by WriteBundle.
func ReadBundle(r io.Reader) (Bundle, error) {
	var b Bundle
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return Bundle{}, errors.Wrap(err, "decoding bundle")
	}
	return b, nil
}
