// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package history journals data directory mutations as git commits.
package history

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/attache-dev/attache/internal/iterx"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/pkg/errors"
)

// Recorder appends one journal entry per recorded change.
type Recorder interface {
	Record(ctx context.Context, message string) error
}

// NopRecorder discards changes. It serves when journaling is disabled.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

// Record implements Recorder.
func (NopRecorder) Record(context.Context, string) error { return nil }

// Entry is one journaled change.
type Entry struct {
	Hash    string
	When    time.Time
	Message string
}

// GitRecorder journals the full data directory state on each record.
type GitRecorder struct {
	repo *git.Repository
}

var _ Recorder = (*GitRecorder)(nil)

// Open returns a recorder over the given storage and worktree, initializing
// the repository on first use.
func Open(s storage.Storer, worktree billy.Filesystem) (*GitRecorder, error) {
	repo, err := git.Open(s, worktree)
	switch err {
	case nil:
	case git.ErrRepositoryNotExists:
		repo, err = git.Init(s, worktree)
		if err != nil {
			return nil, errors.Wrap(err, "initializing journal repository")
		}
	default:
		return nil, errors.Wrap(err, "opening journal repository")
	}
	return &GitRecorder{repo: repo}, nil
}

// OpenDir returns a recorder journaling the data directory at dir, keeping
// its metadata under dir/.git.
func OpenDir(dir string) (*GitRecorder, error) {
	dataFS, err := osfs.New("/").Chroot(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to chroot into directory %s", dir)
	}
	dotGit, err := dataFS.Chroot(git.GitDirName)
	if err != nil {
		return nil, errors.Wrap(err, "resolving journal metadata directory")
	}
	return Open(filesystem.NewStorage(dotGit, cache.NewObjectLRUDefault()), dataFS)
}

// Record stages every change under the worktree and commits it with the
// given message. A clean worktree records nothing.
func (g *GitRecorder) Record(ctx context.Context, message string) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return errors.Wrap(err, "getting worktree")
	}
	if _, err := wt.Add("."); err != nil {
		return errors.Wrap(err, "staging changes")
	}
	status, err := wt.Status()
	if err != nil {
		return errors.Wrap(err, "reading status")
	}
	if status.IsClean() {
		return nil
	}
	signature := &object.Signature{Name: "attache", Email: "attache@localhost", When: time.Now()}
	if _, err := wt.Commit(message, &git.CommitOptions{Author: signature}); err != nil {
		return errors.Wrap(err, "creating commit")
	}
	return nil
}

// Entries lists journaled changes, newest first. A non-positive limit returns
// every entry.
func (g *GitRecorder) Entries(ctx context.Context, limit int) ([]Entry, error) {
	head, err := g.repo.Head()
	switch err {
	case nil:
	case plumbing.ErrReferenceNotFound:
		// Nothing journaled yet.
		return nil, nil
	default:
		return nil, errors.Wrap(err, "resolving HEAD")
	}
	commits, err := g.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, errors.Wrap(err, "reading log")
	}
	defer commits.Close()
	var entries []Entry
	for c, err := range iterx.ToSeq2(commits, io.EOF) {
		if err != nil {
			return nil, errors.Wrap(err, "walking commits")
		}
		entries = append(entries, Entry{
			Hash:    c.Hash.String()[:8],
			When:    c.Author.When,
			Message: strings.TrimSpace(c.Message),
		})
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}
