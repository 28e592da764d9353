// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package main builds attache and runs it against the local data home.
// Remaining arguments are passed through, e.g. `run_local tui`.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/exec"

	"github.com/attache-dev/attache/build/binary"
	"github.com/attache-dev/attache/build/container"
	"github.com/attache-dev/attache/internal/localfiles"
	"github.com/attache-dev/attache/tools/docker"
)

var (
	local   = flag.Bool("local", false, "build and run the binary directly instead of the container image")
	version = flag.String("version", "", "version stamp for the build")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	if *local {
		path, err := binary.Build(ctx, "attache", *version)
		if err != nil {
			log.Fatal(err)
		}
		cmd := exec.CommandContext(ctx, path, flag.Args()...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			log.Fatal("Error running attache: ", err.Error())
		}
		return
	}

	if err := container.Build(ctx, "attache", *version); err != nil {
		log.Fatal(err)
	}
	dataDir, err := localfiles.DataHome()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Starting container with data home %s", dataDir)
	if err := docker.Run(ctx, "attache", dataDir, &docker.RunOptions{Args: flag.Args()}); err != nil {
		log.Fatal("Error running attache: ", err.Error())
	}
}
