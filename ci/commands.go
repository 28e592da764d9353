// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"strings"
)

func run(args ...string) taskFn {
	return func(ctx context.Context) (string, string, error) {
		if verbose {
			return runLoud(ctx, args[0], args[1:]...)
		}
		return runQuiet(ctx, args[0], args[1:]...)
	}
}

// failIfOutput turns any stdout from a -l style checker into a failure.
func (fn taskFn) failIfOutput(msg string) taskFn {
	return func(ctx context.Context) (string, string, error) {
		stdout, stderr, err := fn(ctx)
		if err != nil {
			return stdout, stderr, err
		}
		if strings.TrimSpace(stdout) != "" {
			return msg + ":\n" + stdout, stderr, errors.New(msg)
		}
		return "", stderr, nil
	}
}

var (
	goBuild = run("go", "build", "./...")
	goTest  = run("go", "test", "./...")
	goRace  = run("go", "test", "-race", "./...")
	goVet   = run("go", "vet", "./...")

	gofmtCheck = run("gofmt", "-l", ".").failIfOutput("files need formatting")
	gofmtFix   = run("gofmt", "-w", ".")

	goimportsCheck = run("go", "tool", "goimports", "-l", ".").failIfOutput("files need import formatting")
	goimportsFix   = run("go", "tool", "goimports", "-w", ".")

	addlicenseCheck = run("go", "tool", "addlicense", "-check", "-s=only", "-ignore=.*/**", "-ignore=bin/**", ".")
	addlicenseFix   = run("go", "tool", "addlicense", "-s=only", "-ignore=.*/**", "-ignore=bin/**", ".")
)

// Checkers run together under check; fixers rewrite files so fix runs them
// one at a time.
var (
	checkers = []task{
		{"build", goBuild},
		{"test", goTest},
		{"lint", goVet},
		{"fmt", gofmtCheck},
		{"imports", goimportsCheck},
		{"license", addlicenseCheck},
	}
	fixers = []task{
		{"fmt", gofmtFix},
		{"imports", goimportsFix},
		{"license", addlicenseFix},
	}
)

func build() error        { return runSingle("build", goBuild) }
func test() error         { return runSingle("test", goTest) }
func race() error         { return runSingle("race", goRace) }
func lint() error         { return runSingle("lint", goVet) }
func fmtCheck() error     { return runSingle("fmt-check", gofmtCheck) }
func importsCheck() error { return runSingle("imports-check", goimportsCheck) }
func licenseCheck() error { return runSingle("license-check", addlicenseCheck) }

func fmtFix() error     { return runSingle("fmt", gofmtFix) }
func importsFix() error { return runSingle("imports", goimportsFix) }
func licenseFix() error { return runSingle("license", addlicenseFix) }

func check() error { return runParallel(checkers) }
func fix() error   { return runSequential(fixers) }
