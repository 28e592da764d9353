// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package docker shells out to the local docker client.
package docker

import (
	"context"
	"log"
	"os"
	"os/exec"
	"syscall"
)

// RunOptions carries extra docker flags and program arguments for Run.
type RunOptions struct {
	DockerArgs []string
	Args       []string
}

// Run starts an interactive container over the caller's terminal, mounting
// dataDir as the image's data home. The exit status is the container
// command's own.
func Run(ctx context.Context, img, dataDir string, opts *RunOptions) error {
	args := []string{"run", "--rm", "--interactive", "--tty"}
	args = append(args, "--volume", dataDir+":/attache")
	args = append(args, opts.DockerArgs...)
	args = append(args, img)
	args = append(args, opts.Args...)
	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Context cancellation would otherwise SIGKILL the client, which docker
	// does not forward to the container.
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGINT)
	}
	log.Print(cmd.String())
	return cmd.Run()
}
