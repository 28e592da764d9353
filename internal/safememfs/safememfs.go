// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package safememfs serves an in-memory billy filesystem guarded by a
// mutex so concurrent readers and writers can share it.
package safememfs

import (
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

// FS wraps memfs.Memory, whose bookkeeping is not safe for concurrent
// use, with a single lock. Reads and writes through an already-open file
// still race; callers coordinate those themselves.
type FS struct {
	inner billy.Filesystem
	// Shared across Chroot results so every view locks the same store.
	mu *sync.Mutex
}

var _ billy.Filesystem = (*FS)(nil)

// New returns an empty concurrency-safe in-memory filesystem.
func New() *FS {
	return &FS{inner: memfs.New(), mu: new(sync.Mutex)}
}

func (f *FS) Create(filename string) (billy.File, error) {
	return f.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
}

func (f *FS) Open(filename string) (billy.File, error) {
	return f.OpenFile(filename, os.O_RDONLY, 0666)
}

func (f *FS) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.OpenFile(filename, flag, perm)
}

func (f *FS) Stat(filename string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.Stat(filename)
}

func (f *FS) Rename(from, to string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.Rename(from, to)
}

func (f *FS) Remove(filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.Remove(filename)
}

// Join needs no lock since it never touches the store.
func (f *FS) Join(elem ...string) string {
	return f.inner.Join(elem...)
}

func (f *FS) TempFile(dir, prefix string) (billy.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.TempFile(dir, prefix)
}

func (f *FS) ReadDir(path string) ([]os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.ReadDir(path)
}

func (f *FS) MkdirAll(path string, perm os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.MkdirAll(path, perm)
}

func (f *FS) Lstat(filename string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.Lstat(filename)
}

func (f *FS) Symlink(target, link string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.Symlink(target, link)
}

func (f *FS) Readlink(link string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inner.Readlink(link)
}

func (f *FS) Chroot(path string) (billy.Filesystem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, err := f.inner.Chroot(path)
	if err != nil {
		return nil, err
	}
	return &FS{inner: sub, mu: f.mu}, nil
}

func (f *FS) Root() string {
	return "/"
}
