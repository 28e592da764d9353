// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/attache-dev/attache/internal/billyx"
	"github.com/attache-dev/attache/pkg/layout"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const snapshotFileName = "snapshot.json"

var _ Snapshotter = (*FilesystemClient)(nil)

// Snapshot describes a saved copy of the data home's records.
type Snapshot struct {
	ID       string    `json:"id" yaml:"id"`
	Created  time.Time `json:"created" yaml:"created"`
	Contacts int       `json:"contacts" yaml:"contacts"`
	Notes    int       `json:"notes" yaml:"notes"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
}

// CreateSnapshot copies the live record files under the snapshots dir and
// writes the snapshot metadata.
func (f *FilesystemClient) CreateSnapshot(ctx context.Context, label string) (Snapshot, error) {
	s := Snapshot{
		ID:      uuid.New().String(),
		Created: time.Now().UTC(),
		Label:   label,
	}
	dest := filepath.Join(layout.SnapshotsDir, s.ID)
	var err error
	if s.Contacts, err = f.copyTree(layout.ContactsDir, filepath.Join(dest, layout.ContactsDir)); err != nil {
		return Snapshot{}, errors.Wrap(err, "copying contacts")
	}
	if s.Notes, err = f.copyTree(layout.NotesDir, filepath.Join(dest, layout.NotesDir)); err != nil {
		return Snapshot{}, errors.Wrap(err, "copying notes")
	}
	file, err := f.fs.Create(filepath.Join(dest, snapshotFileName))
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "creating snapshot file")
	}
	defer file.Close()
	if err := json.NewEncoder(file).Encode(s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Snapshots lists snapshot metadata, newest first.
func (f *FilesystemClient) Snapshots(ctx context.Context) ([]Snapshot, error) {
	snaps := make([]Snapshot, 0)
	err := util.Walk(f.fs, layout.SnapshotsDir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Base(path) != snapshotFileName {
			return nil
		}
		file, err := f.fs.Open(path)
		if err != nil {
			return errors.Wrap(err, "opening snapshot file")
		}
		defer file.Close()
		var s Snapshot
		if err := json.NewDecoder(file).Decode(&s); err != nil {
			return errors.Wrapf(err, "decoding snapshot file %s", path)
		}
		snaps = append(snaps, s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(snaps, func(a, b Snapshot) int {
		return b.Created.Compare(a.Created)
	})
	return snaps, nil
}

// RestoreSnapshot replaces the live records with the snapshot's. The ID may
// be abbreviated to a unique prefix.
func (f *FilesystemClient) RestoreSnapshot(ctx context.Context, id string) (Snapshot, error) {
	s, err := f.findSnapshot(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	src := filepath.Join(layout.SnapshotsDir, s.ID)
	for _, dir := range []string{layout.ContactsDir, layout.NotesDir} {
		if err := util.RemoveAll(f.fs, dir); err != nil {
			return Snapshot{}, errors.Wrapf(err, "clearing %s", dir)
		}
		if _, err := f.copyTree(filepath.Join(src, dir), dir); err != nil {
			return Snapshot{}, errors.Wrapf(err, "restoring %s", dir)
		}
	}
	return s, nil
}

func (f *FilesystemClient) findSnapshot(ctx context.Context, id string) (Snapshot, error) {
	if id == "" {
		return Snapshot{}, errors.New("empty snapshot ID")
	}
	snaps, err := f.Snapshots(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	var matches []Snapshot
	for _, s := range snaps {
		if strings.HasPrefix(s.ID, id) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return Snapshot{}, errors.Errorf("no snapshot %q", id)
	case 1:
		return matches[0], nil
	default:
		return Snapshot{}, errors.Errorf("snapshot ID %q is ambiguous", id)
	}
}

// copyTree copies every file under src into dest, returning the file count.
// An absent src copies nothing.
func (f *FilesystemClient) copyTree(src, dest string) (int, error) {
	srcFS, err := f.fs.Chroot(src)
	if err != nil {
		return 0, errors.Wrapf(err, "entering %s", src)
	}
	destFS, err := f.fs.Chroot(dest)
	if err != nil {
		return 0, errors.Wrapf(err, "entering %s", dest)
	}
	return billyx.CopyFS(destFS, srcFS)
}
