// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package billyx supplies helpers shared by billy filesystem consumers.
package billyx

import (
	"io"
	"io/fs"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// CopyFS copies every file under src into dst, preserving paths and file
// modes, and reports how many files were written. An absent src copies
// nothing.
func CopyFS(dst, src billy.Filesystem) (int, error) {
	var count int
	err := util.Walk(src, "/", func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if path == "/" || path == "" {
			return nil
		}
		if info.IsDir() {
			return dst.MkdirAll(path, info.Mode())
		}
		if err := copyFile(dst, src, path, info.Mode()); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func copyFile(dst, src billy.Filesystem, path string, mode fs.FileMode) error {
	in, err := src.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := dst.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
