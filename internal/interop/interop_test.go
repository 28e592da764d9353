// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"bytes"
	"testing"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/google/go-cmp/cmp"
)

func TestBundleRoundTrip(t *testing.T) {
	contacts := []book.Record{
		{ID: 1, Name: "Ada", Phones: []book.Phone{"123456789"}},
		{ID: 2, Name: "Grace", Emails: []book.Email{"grace@navy.mil"}},
	}
	notes := []note.Note{
		{ID: 1, Title: "groceries", Content: "milk", Tags: []string{"shopping"}},
	}
	var buf bytes.Buffer
	if err := WriteBundle(&buf, contacts, notes); err != nil {
		t.Fatalf("WriteBundle() = %v", err)
	}
	got, err := ReadBundle(&buf)
	if err != nil {
		t.Fatalf("ReadBundle() = %v", err)
	}
	if got.Metadata.Contacts != 2 || got.Metadata.Notes != 1 {
		t.Errorf("Metadata = %+v, want 2 contacts and 1 note", got.Metadata)
	}
	if got.Metadata.Exported.IsZero() {
		t.Error("Metadata.Exported is zero")
	}
	if diff := cmp.Diff(contacts, got.Contacts); diff != "" {
		t.Errorf("Contacts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(notes, got.Notes); diff != "" {
		t.Errorf("Notes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMapping(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Mapping
		wantErr bool
	}{
		{
			name: "empty keeps defaults",
			in:   "",
			want: Mapping{Name: "name", Phones: "phones", Emails: "emails", Birthday: "birthday"},
		},
		{
			name: "partial overlay",
			in:   "name=full_name,phones=tel",
			want: Mapping{Name: "full_name", Phones: "tel", Emails: "emails", Birthday: "birthday"},
		},
		{
			name: "nested paths",
			in:   "name=profile.display_name,emails=contact.emails",
			want: Mapping{Name: "profile.display_name", Phones: "phones", Emails: "contact.emails", Birthday: "birthday"},
		},
		{
			name:    "unknown field",
			in:      "nickname=nick",
			wantErr: true,
		},
		{
			name:    "malformed pair",
			in:      "name",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMapping(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMapping() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseMapping() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadForeign(t *testing.T) {
	doc := []byte(`{
		"results": {
			"people": [
				{"full_name": "Ada Lovelace", "tel": "123456789", "mail": ["ada@example.com"], "born": "1815-12-10"},
				{"full_name": "Grace Hopper", "tel": ["987654321", "111222333"]},
				{"full_name": "", "tel": "123456789"},
				{"full_name": "Bad Phone", "tel": "555"}
			]
		}
	}`)
	m, err := ParseMapping("name=full_name,phones=tel,emails=mail,birthday=born")
	if err != nil {
		t.Fatalf("ParseMapping() = %v", err)
	}
	records, skipped, err := ReadForeign(doc, "results.people", m)
	if err != nil {
		t.Fatalf("ReadForeign() = %v", err)
	}
	if skipped != 2 {
		t.Errorf("ReadForeign() skipped = %d, want 2", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("ReadForeign() returned %d records, want 2", len(records))
	}
	{
		got := records[0]
		if got.Name != "Ada Lovelace" {
			t.Errorf("records[0].Name = %q, want %q", got.Name, "Ada Lovelace")
		}
		if diff := cmp.Diff([]book.Phone{"123456789"}, got.Phones); diff != "" {
			t.Errorf("records[0].Phones mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]book.Email{"ada@example.com"}, got.Emails); diff != "" {
			t.Errorf("records[0].Emails mismatch (-want +got):\n%s", diff)
		}
		if got.Birthday != "1815-12-10" {
			t.Errorf("records[0].Birthday = %q, want %q", got.Birthday, "1815-12-10")
		}
		if got.ID != 0 {
			t.Errorf("records[0].ID = %d, want 0 before storage", got.ID)
		}
	}
	if diff := cmp.Diff([]book.Phone{"987654321", "111222333"}, records[1].Phones); diff != "" {
		t.Errorf("records[1].Phones mismatch (-want +got):\n%s", diff)
	}
}

func TestReadForeignTopLevelArray(t *testing.T) {
	doc := []byte(`[{"name": "Ada", "phones": ["123456789"]}]`)
	records, skipped, err := ReadForeign(doc, "", DefaultMapping())
	if err != nil {
		t.Fatalf("ReadForeign() = %v", err)
	}
	if skipped != 0 {
		t.Errorf("ReadForeign() skipped = %d, want 0", skipped)
	}
	if len(records) != 1 || records[0].Name != "Ada" {
		t.Fatalf("ReadForeign() = %+v, want one record named Ada", records)
	}
}

func TestReadForeignBadRoot(t *testing.T) {
	doc := []byte(`{"people": {"name": "not an array"}}`)
	if _, _, err := ReadForeign(doc, "people", DefaultMapping()); err == nil {
		t.Error("ReadForeign() expected error for non-array root")
	}
}
