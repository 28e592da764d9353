// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package billyx

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

func TestCopyFS(t *testing.T) {
	src := memfs.New()
	if err := util.WriteFile(src, "1.json", []byte(`{"id":1}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := util.WriteFile(src, "nested/deep/2.json", []byte(`{"id":2}`), 0644); err != nil {
		t.Fatal(err)
	}
	dst := memfs.New()
	n, err := CopyFS(dst, src)
	if err != nil {
		t.Fatalf("CopyFS() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CopyFS() copied %d files, want 2", n)
	}
	got, err := util.ReadFile(dst, "nested/deep/2.json")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != `{"id":2}` {
		t.Errorf("copied content = %s, want the source bytes", got)
	}
}

func TestCopyFSAbsentSource(t *testing.T) {
	src, err := memfs.New().Chroot("missing")
	if err != nil {
		t.Fatal(err)
	}
	n, err := CopyFS(memfs.New(), src)
	if err != nil {
		t.Fatalf("CopyFS() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CopyFS() copied %d files from an absent directory, want 0", n)
	}
}
