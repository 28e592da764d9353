// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package binary provides routines to programmatically build the project's binaries.
package binary

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Build compiles ./cmd/<name> into ./bin/<name>, stamping the build version
// when one is given. CGO stays enabled for the sqlite export backend.
func Build(ctx context.Context, name, version string) (path string, err error) {
	args := []string{"build"}
	if version != "" {
		args = append(args, "-ldflags", fmt.Sprintf("-X github.com/attache-dev/attache/internal/command/version.Version=%s", version))
	}
	args = append(args,
		"-o", strings.Join([]string{".", "bin", name}, string(os.PathSeparator)),
		strings.Join([]string{".", "cmd", name}, string(os.PathSeparator)))
	cmd := exec.CommandContext(ctx, "go", args...)
	cmd.Env = append(os.Environ(), "CGO_ENABLED=1")
	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()
	log.Print(cmd.String())
	err = cmd.Run()
	if err != nil {
		return
	}
	path, err = filepath.Abs(filepath.Join(".", "bin", name))
	return
}
