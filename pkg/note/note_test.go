// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package note

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "simple list", input: "go,cli", want: []string{"go", "cli"}},
		{name: "whitespace trimmed", input: " go , cli ", want: []string{"go", "cli"}},
		{name: "empty entries dropped", input: "go,,cli,", want: []string{"go", "cli"}},
		{name: "empty input", input: "", want: nil},
		{name: "only commas", input: ",,,", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTags(tt.input); !cmp.Equal(got, tt.want) {
				t.Errorf("ParseTags(%q) diff: %v", tt.input, cmp.Diff(got, tt.want))
			}
		})
	}
}

func TestUniqueTags(t *testing.T) {
	notes := []Note{
		{Title: "a", Tags: []string{"go", "cli"}},
		{Title: "b", Tags: []string{"cli", "todo"}},
		{Title: "c"},
	}
	if got, want := UniqueTags(notes), []string{"cli", "go", "todo"}; !cmp.Equal(got, want) {
		t.Errorf("UniqueTags() diff: %v", cmp.Diff(got, want))
	}
	if got := UniqueTags(nil); len(got) != 0 {
		t.Errorf("UniqueTags(nil) = %v, want empty", got)
	}
}

func TestFilterByTag(t *testing.T) {
	notes := []Note{
		{ID: 1, Tags: []string{"go"}},
		{ID: 2, Tags: []string{"cli"}},
		{ID: 3, Tags: []string{"go", "cli"}},
	}
	got := FilterByTag(notes, "go")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FilterByTag() = %v, want notes 1 and 3", got)
	}
	if got := FilterByTag(notes, "absent"); got != nil {
		t.Errorf("FilterByTag() = %v, want nil", got)
	}
}

func TestSortByTag(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	notes := []Note{
		{ID: 1, Tags: []string{"go"}, Created: day(1)},
		{ID: 2, Tags: []string{"cli"}, Created: day(2)},
		{ID: 3, Tags: []string{"go"}, Created: day(3)},
		{ID: 4, Created: day(4)},
	}
	sorted, ok := SortByTag(notes, "go")
	if !ok {
		t.Fatal("SortByTag() = false, want true")
	}
	var ids []int
	for _, n := range sorted {
		ids = append(ids, n.ID)
	}
	// Tagged notes first, newest first, then the rest in prior order.
	if want := []int{3, 1, 2, 4}; !cmp.Equal(ids, want) {
		t.Errorf("SortByTag() order = %v, want %v", ids, want)
	}
	if _, ok := SortByTag(notes, "absent"); ok {
		t.Error("SortByTag() = true for absent tag, want false")
	}
}

func TestUpdate(t *testing.T) {
	n := Note{Title: "old title", Content: "old content", Tags: []string{"go"}}
	n.Update("", "new content", nil)
	if n.Title != "old title" {
		t.Errorf("Title = %q, want previous value kept", n.Title)
	}
	if n.Content != "new content" {
		t.Errorf("Content = %q, want updated", n.Content)
	}
	if got, want := n.Tags, []string{"go"}; !cmp.Equal(got, want) {
		t.Errorf("Tags diff: %v", cmp.Diff(got, want))
	}
	n.Update("new title", "", []string{})
	if n.Title != "new title" {
		t.Errorf("Title = %q, want updated", n.Title)
	}
	if len(n.Tags) != 0 {
		t.Errorf("Tags = %v, want cleared", n.Tags)
	}
}

func TestMatches(t *testing.T) {
	n := Note{Title: "Shopping List", Content: "milk and bread"}
	tests := []struct {
		name string
		term string
		want bool
	}{
		{name: "title substring", term: "shopping", want: true},
		{name: "content substring", term: "Bread", want: true},
		{name: "no match", term: "eggs", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Matches(tt.term); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}
