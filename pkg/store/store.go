// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package store provides access to the contact and note records kept in the
// attache data home.
package store

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/attache-dev/attache/internal/pipe"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/pkg/errors"
)

// Query describes which contact records to fetch.
type Query struct {
	// IDs restricts results to the given record IDs.
	IDs []int
	// Term filters by the record match predicate: case-insensitive substring
	// on the name, raw substring on phones and emails.
	Term string
	// Pattern filters by a regexp applied to the rendered record.
	Pattern string
}

// NoteQuery describes which notes to fetch.
type NoteQuery struct {
	IDs []int
	// Tag restricts results to notes carrying the tag.
	Tag string
	// Term filters by case-insensitive substring on title or content.
	Term string
	// Pattern filters by a regexp applied to the rendered note.
	Pattern string
}

type Reader interface {
	Contacts(context.Context, Query) ([]book.Record, error)
	Notes(context.Context, NoteQuery) ([]note.Note, error)
}

// Writer stores and removes records. Put assigns the lowest unused positive
// ID when the given record's ID is zero and returns the stored record.
type Writer interface {
	PutContact(context.Context, book.Record) (book.Record, error)
	DeleteContact(context.Context, int) error
	PutNote(context.Context, note.Note) (note.Note, error)
	DeleteNote(context.Context, int) error
}

// Watcher exposes subscriber channels fed on every write.
type Watcher interface {
	WatchContacts() <-chan *book.Record
	WatchNotes() <-chan *note.Note
}

// Client bundles read and write access to one data set.
type Client interface {
	Reader
	Writer
}

// Snapshotter manages point-in-time copies of the data set.
type Snapshotter interface {
	CreateSnapshot(ctx context.Context, label string) (Snapshot, error)
	Snapshots(ctx context.Context) ([]Snapshot, error)
	RestoreSnapshot(ctx context.Context, id string) (Snapshot, error)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	pat, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "compiling pattern")
	}
	return pat, nil
}

func filterContacts(all <-chan book.Record, q Query, pat *regexp.Regexp) []book.Record {
	p := pipe.From(all)
	if len(q.IDs) != 0 {
		p = p.Do(func(in book.Record, out chan<- book.Record) {
			if slices.Contains(q.IDs, in.ID) {
				out <- in
			}
		})
	}
	if q.Term != "" {
		p = p.Do(func(in book.Record, out chan<- book.Record) {
			if in.Matches(q.Term) {
				out <- in
			}
		})
	}
	if pat != nil {
		p = p.Do(func(in book.Record, out chan<- book.Record) {
			if pat.MatchString(in.String()) {
				out <- in
			}
		})
	}
	var res []book.Record
	for r := range p.Out() {
		res = append(res, r)
	}
	slices.SortFunc(res, func(a, b book.Record) int { return a.ID - b.ID })
	return res
}

func filterNotes(all <-chan note.Note, q NoteQuery, pat *regexp.Regexp) []note.Note {
	p := pipe.From(all)
	if len(q.IDs) != 0 {
		p = p.Do(func(in note.Note, out chan<- note.Note) {
			if slices.Contains(q.IDs, in.ID) {
				out <- in
			}
		})
	}
	if q.Tag != "" {
		p = p.Do(func(in note.Note, out chan<- note.Note) {
			if in.HasTag(q.Tag) {
				out <- in
			}
		})
	}
	if q.Term != "" {
		p = p.Do(func(in note.Note, out chan<- note.Note) {
			if in.Matches(q.Term) {
				out <- in
			}
		})
	}
	if pat != nil {
		p = p.Do(func(in note.Note, out chan<- note.Note) {
			if pat.MatchString(in.String()) {
				out <- in
			}
		})
	}
	var res []note.Note
	for n := range p.Out() {
		res = append(res, n)
	}
	slices.SortFunc(res, func(a, b note.Note) int { return a.ID - b.ID })
	return res
}

// InitialGroup is a collection of records sharing the first letter of the name.
type InitialGroup struct {
	Initial string
	Count   int
	Records []book.Record
}

// GroupByInitial groups records by the upper-cased first rune of the name,
// sorted alphabetically.
func GroupByInitial(records []book.Record) []*InitialGroup {
	byInitial := make(map[string]*InitialGroup)
	for _, r := range records {
		first, _ := utf8.DecodeRuneInString(strings.TrimSpace(string(r.Name)))
		initial := string(unicode.ToUpper(first))
		if _, seen := byInitial[initial]; !seen {
			byInitial[initial] = &InitialGroup{Initial: initial}
		}
		byInitial[initial].Count++
		byInitial[initial].Records = append(byInitial[initial].Records, r)
	}
	groups := make([]*InitialGroup, 0, len(byInitial))
	for _, g := range byInitial {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b *InitialGroup) int {
		return strings.Compare(a.Initial, b.Initial)
	})
	return groups
}

// TagGroup is a collection of notes sharing a tag. Notes without tags are
// collected under the empty tag.
type TagGroup struct {
	Tag   string
	Count int
	Notes []note.Note
}

// GroupByTag groups notes by tag, sorted alphabetically with the untagged
// group first. A note appears once per tag it carries.
func GroupByTag(notes []note.Note) []*TagGroup {
	byTag := make(map[string]*TagGroup)
	add := func(tag string, n note.Note) {
		if _, seen := byTag[tag]; !seen {
			byTag[tag] = &TagGroup{Tag: tag}
		}
		byTag[tag].Count++
		byTag[tag].Notes = append(byTag[tag].Notes, n)
	}
	for _, n := range notes {
		if len(n.Tags) == 0 {
			add("", n)
			continue
		}
		for _, t := range n.Tags {
			add(t, n)
		}
	}
	groups := make([]*TagGroup, 0, len(byTag))
	for _, g := range byTag {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b *TagGroup) int {
		return strings.Compare(a.Tag, b.Tag)
	})
	return groups
}

// Page returns the nth fixed-size page of items, one-based. Out-of-range
// pages are empty.
func Page[T any](items []T, size, n int) []T {
	if size <= 0 || n <= 0 {
		return nil
	}
	start := (n - 1) * size
	if start >= len(items) {
		return nil
	}
	return items[start:min(start+size, len(items))]
}

// Upcoming pairs a record with the days remaining to its birthday.
type Upcoming struct {
	Record book.Record
	Days   int
}

// UpcomingBirthdays returns records whose birthday falls within the next
// `within` days, soonest first. Records without a birthday are skipped.
func UpcomingBirthdays(records []book.Record, now time.Time, within int) []Upcoming {
	var out []Upcoming
	for _, r := range records {
		if r.Birthday == "" {
			continue
		}
		days, err := r.DaysUntilBirthday(now)
		if err != nil {
			continue
		}
		if days <= within {
			out = append(out, Upcoming{Record: r, Days: days})
		}
	}
	slices.SortStableFunc(out, func(a, b Upcoming) int { return a.Days - b.Days })
	return out
}
