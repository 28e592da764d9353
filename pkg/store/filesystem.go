// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/layout"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
)

const (
	contactFileName = "record.json"
	noteFileName    = "note.json"
)

// FilesystemClient keeps one JSON file per record under the data home.
type FilesystemClient struct {
	fs                 billy.Filesystem
	contactSubscribers []chan<- *book.Record
	noteSubscribers    []chan<- *note.Note
}

var _ Reader = &FilesystemClient{}
var _ Writer = &FilesystemClient{}
var _ Watcher = &FilesystemClient{}

func NewFilesystemClient(fs billy.Filesystem) *FilesystemClient {
	return &FilesystemClient{
		fs: fs,
	}
}

// Contacts fetches the contact records matching the query, ordered by ID.
func (f *FilesystemClient) Contacts(ctx context.Context, q Query) ([]book.Record, error) {
	pat, err := compilePattern(q.Pattern)
	if err != nil {
		return nil, err
	}
	walkErr := make(chan error, 1)
	all := make(chan book.Record, 1)
	go func() {
		defer close(all)
		walkErr <- util.Walk(f.fs, layout.ContactsDir, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				// An absent data dir reads as an empty book.
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			if info.IsDir() {
				return nil
			}
			if filepath.Base(path) != contactFileName {
				return nil
			}
			file, err := f.fs.Open(path)
			if err != nil {
				return errors.Wrap(err, "opening record file")
			}
			defer file.Close()
			var r book.Record
			if err := json.NewDecoder(file).Decode(&r); err != nil {
				return errors.Wrapf(err, "decoding record file %s", path)
			}
			all <- r
			return nil
		})
	}()
	records := filterContacts(all, q, pat)
	if err := <-walkErr; err != nil {
		return nil, errors.Wrap(err, "exploring contacts dir")
	}
	return records, nil
}

// Notes fetches the notes matching the query, ordered by ID.
func (f *FilesystemClient) Notes(ctx context.Context, q NoteQuery) ([]note.Note, error) {
	pat, err := compilePattern(q.Pattern)
	if err != nil {
		return nil, err
	}
	walkErr := make(chan error, 1)
	all := make(chan note.Note, 1)
	go func() {
		defer close(all)
		walkErr <- util.Walk(f.fs, layout.NotesDir, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				if os.IsNotExist(err) {
					return nil
				}
				return err
			}
			if info.IsDir() {
				return nil
			}
			if filepath.Base(path) != noteFileName {
				return nil
			}
			file, err := f.fs.Open(path)
			if err != nil {
				return errors.Wrap(err, "opening note file")
			}
			defer file.Close()
			var n note.Note
			if err := json.NewDecoder(file).Decode(&n); err != nil {
				return errors.Wrapf(err, "decoding note file %s", path)
			}
			all <- n
			return nil
		})
	}()
	notes := filterNotes(all, q, pat)
	if err := <-walkErr; err != nil {
		return nil, errors.Wrap(err, "exploring notes dir")
	}
	return notes, nil
}

// lowestUnusedID returns the smallest positive ID without a record directory.
// Freed IDs are reused, matching the ID management of the address book.
func lowestUnusedID(bfs billy.Filesystem, dir string) (int, error) {
	entries, err := bfs.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return 0, errors.Wrapf(err, "listing %s", dir)
	}
	used := make(map[int]bool)
	for _, e := range entries {
		if id, err := strconv.Atoi(e.Name()); err == nil {
			used[id] = true
		}
	}
	id := 1
	for used[id] {
		id++
	}
	return id, nil
}

func (f *FilesystemClient) PutContact(ctx context.Context, r book.Record) (book.Record, error) {
	if r.ID == 0 {
		id, err := lowestUnusedID(f.fs, layout.ContactsDir)
		if err != nil {
			return book.Record{}, err
		}
		r.ID = id
	}
	if r.Created.IsZero() {
		r.Created = time.Now().UTC()
	}
	path := filepath.Join(layout.ContactsDir, strconv.Itoa(r.ID), contactFileName)
	file, err := f.fs.Create(path)
	if err != nil {
		return book.Record{}, errors.Wrap(err, "creating file")
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(r); err != nil {
		return book.Record{}, err
	}
	for _, sub := range f.contactSubscribers {
		go func() {
			sub <- &r
		}()
	}
	return r, nil
}

func (f *FilesystemClient) DeleteContact(ctx context.Context, id int) error {
	dir := filepath.Join(layout.ContactsDir, strconv.Itoa(id))
	if _, err := f.fs.Stat(filepath.Join(dir, contactFileName)); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("no contact with ID %d", id)
		}
		return errors.Wrapf(err, "checking contact %d", id)
	}
	return util.RemoveAll(f.fs, dir)
}

func (f *FilesystemClient) PutNote(ctx context.Context, n note.Note) (note.Note, error) {
	if n.ID == 0 {
		id, err := lowestUnusedID(f.fs, layout.NotesDir)
		if err != nil {
			return note.Note{}, err
		}
		n.ID = id
	}
	if n.Created.IsZero() {
		n.Created = time.Now().UTC()
	}
	path := filepath.Join(layout.NotesDir, strconv.Itoa(n.ID), noteFileName)
	file, err := f.fs.Create(path)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "creating file")
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(n); err != nil {
		return note.Note{}, err
	}
	for _, sub := range f.noteSubscribers {
		go func() {
			sub <- &n
		}()
	}
	return n, nil
}

func (f *FilesystemClient) DeleteNote(ctx context.Context, id int) error {
	dir := filepath.Join(layout.NotesDir, strconv.Itoa(id))
	if _, err := f.fs.Stat(filepath.Join(dir, noteFileName)); err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("no note with ID %d", id)
		}
		return errors.Wrapf(err, "checking note %d", id)
	}
	return util.RemoveAll(f.fs, dir)
}

func (f *FilesystemClient) WatchContacts() <-chan *book.Record {
	n := make(chan *book.Record, 1)
	f.contactSubscribers = append(f.contactSubscribers, n)
	return n
}

func (f *FilesystemClient) WatchNotes() <-chan *note.Note {
	n := make(chan *note.Note, 1)
	f.noteSubscribers = append(f.noteSubscribers, n)
	return n
}
