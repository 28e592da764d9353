// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// The ci command runs the repository's build, test, and style checks.
package main

import (
	"fmt"
	"os"
	"slices"
)

// command couples a ci verb with its runner and a usage line.
type command struct {
	name string
	help string
	run  func() error
}

var commands = []command{
	{"build", "Compile every package", build},
	{"test", "Run the test suite", test},
	{"race", "Run the test suite under the race detector", race},
	{"lint", "Run go vet", lint},
	{"fmt", "Rewrite files with gofmt", fmtFix},
	{"fmt-check", "Fail if gofmt would rewrite files", fmtCheck},
	{"imports", "Rewrite import blocks with goimports", importsFix},
	{"imports-check", "Fail if goimports would rewrite files", importsCheck},
	{"license", "Add missing license headers", licenseFix},
	{"license-check", "Fail on files missing license headers", licenseCheck},
	{"check", "Run every checker in parallel", check},
	{"fix", "Run every fixer in order", fix},
}

func main() {
	args := os.Args[1:]
	if slices.Contains(args, "-v") {
		verbose = true
		interactive = false
		args = slices.DeleteFunc(args, func(s string) bool { return s == "-v" })
	}
	if len(args) != 1 {
		usage()
		os.Exit(1)
	}
	i := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] })
	if i < 0 {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(1)
	}
	if err := commands[i].run(); err != nil {
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: go run ./ci [-v] <command>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v             Stream tool output instead of the status board")
	fmt.Println()
	fmt.Println("Commands:")
	for _, c := range commands {
		fmt.Printf("  %-14s %s\n", c.name, c.help)
	}
}
