// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package container provides routines to programmatically build the project's container images.
package container

import (
	"context"
	"log"
	"os/exec"
	"path/filepath"
)

// Build constructs the container image for one of the project's binaries
// from its build/package recipe.
func Build(ctx context.Context, name, version string) error {
	relpath := "build/package/Dockerfile." + name
	dockerfile, _ := filepath.Abs(relpath)
	args := []string{"build", "--tag", name, "--file", dockerfile}
	if version != "" {
		args = append(args, "--build-arg", "VERSION="+version)
	}
	args = append(args, ".")
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdout = log.Writer()
	cmd.Stderr = log.Writer()
	log.Print(cmd.String())
	return cmd.Run()
}
