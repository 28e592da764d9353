// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package localfiles resolves the attache data home on the local filesystem.
package localfiles

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
)

// DataHome returns the attache data directory: $ATTACHE_HOME when set, else
// ~/.local/share/attache.
func DataHome() (string, error) {
	if dir := os.Getenv("ATTACHE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(home, ".local", "share", "attache"), nil
}

// DataFS returns a filesystem rooted at dir, creating the directory if needed.
func DataFS(dir string) (billy.Filesystem, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create directory %s", dir)
	}
	fs, err := osfs.New("/").Chroot(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to chroot into directory %s", dir)
	}
	return fs, nil
}
