// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package note defines the tagged notes managed by attache.
package note

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Note is a single notebook entry.
// An ID of zero means the note has not been stored yet.
type Note struct {
	ID      int       `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Content string    `json:"content" yaml:"content"`
	Tags    []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Created time.Time `json:"created" yaml:"created"`
}

// New creates an unstored Note.
func New(title, content string, tags []string) Note {
	return Note{Title: title, Content: content, Tags: tags, Created: time.Now().UTC()}
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty entries.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}

func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Matches reports whether the note matches a search term: case-insensitive
// substring on the title or content.
func (n Note) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}

// Update applies an edit. Empty title or content keeps the previous value;
// nil tags keeps the previous tag set.
func (n *Note) Update(title, content string, tags []string) {
	if title != "" {
		n.Title = title
	}
	if content != "" {
		n.Content = content
	}
	if tags != nil {
		n.Tags = tags
	}
}

func (n Note) String() string {
	s := fmt.Sprintf("ID: %d, Title: %s, Content: %s", n.ID, n.Title, n.Content)
	if len(n.Tags) > 0 {
		s += fmt.Sprintf(", Tags: %s", strings.Join(n.Tags, ", "))
	}
	return s
}

// UniqueTags returns the sorted set of tags used across notes.
func UniqueTags(notes []Note) []string {
	set := make(map[string]bool)
	for _, n := range notes {
		for _, t := range n.Tags {
			set[t] = true
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// FilterByTag returns the notes carrying the tag.
func FilterByTag(notes []Note, tag string) []Note {
	var found []Note
	for _, n := range notes {
		if n.HasTag(tag) {
			found = append(found, n)
		}
	}
	return found
}

// SortByTag orders notes carrying the tag first, newest created first, with
// the remaining notes following in their prior order. Returns false when no
// note carries the tag.
func SortByTag(notes []Note, tag string) ([]Note, bool) {
	var tagged, rest []Note
	for _, n := range notes {
		if n.HasTag(tag) {
			tagged = append(tagged, n)
		} else {
			rest = append(rest, n)
		}
	}
	if len(tagged) == 0 {
		return notes, false
	}
	slices.SortStableFunc(tagged, func(a, b Note) int {
		return b.Created.Compare(a.Created)
	})
	return append(tagged, rest...), true
}
