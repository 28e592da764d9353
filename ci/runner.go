// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

var interactive = isTerminal()
var verbose bool

// ANSI escape codes for terminal formatting
const (
	ansiReset     = "\033[0m"
	ansiRed       = "\033[0;31m"
	ansiGreen     = "\033[0;32m"
	ansiYellow    = "\033[0;33m"
	ansiDim       = "\033[0;90m"
	ansiClearLine = "\033[2K"
	ansiCursorUp  = "\033[%dA"
)

var spinner = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

type taskFn func(context.Context) (stdout, stderr string, err error)

type task struct {
	name string
	fn   taskFn
}

type result struct {
	index  int
	stdout string
	stderr string
	err    error
}

const (
	statePending = iota
	stateRunning
	stateDone
	stateFailed
	stateCancelled
)

// board tracks task states and redraws them in place on a terminal. All
// methods run on the coordinating goroutine; workers only send results.
type board struct {
	tasks  []task
	states []int
	frame  int
}

func newBoard(tasks []task) *board {
	if interactive {
		// Reserve one line per task to redraw over.
		for range tasks {
			fmt.Println()
		}
	}
	return &board{tasks: tasks, states: make([]int, len(tasks))}
}

func (b *board) set(i, state int) {
	b.states[i] = state
	if interactive {
		return
	}
	switch state {
	case stateDone:
		fmt.Printf("✓ %s\n", b.tasks[i].name)
	case stateFailed:
		fmt.Printf("✗ %s\n", b.tasks[i].name)
	case stateCancelled:
		fmt.Printf("? %s\n", b.tasks[i].name)
	}
}

func (b *board) render() {
	if !interactive {
		return
	}
	b.frame++
	fmt.Printf(ansiCursorUp, len(b.tasks))
	for i, t := range b.tasks {
		fmt.Print(ansiClearLine)
		switch b.states[i] {
		case statePending:
			fmt.Printf(ansiDim+"· %s"+ansiReset+"\n", t.name)
		case stateRunning:
			fmt.Printf(ansiYellow+"%s"+ansiReset+" %s\n", spinner[b.frame%len(spinner)], t.name)
		case stateDone:
			fmt.Printf(ansiGreen+"✓"+ansiReset+" %s\n", t.name)
		case stateFailed:
			fmt.Printf(ansiRed+"✗"+ansiReset+" %s\n", t.name)
		case stateCancelled:
			fmt.Printf(ansiDim+"?"+ansiReset+" %s\n", t.name)
		}
	}
}

func canceled(err error) bool {
	return err == context.Canceled || strings.Contains(err.Error(), "signal: killed")
}

func runParallel(tasks []task) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := newBoard(tasks)
	results := make(chan result, len(tasks))
	for i, t := range tasks {
		b.set(i, stateRunning)
		go func(i int, t task) {
			stdout, stderr, err := t.fn(ctx)
			results <- result{i, stdout, stderr, err}
		}(i, t)
	}

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	var failures []result
	for n := 0; n < len(tasks); {
		select {
		case r := <-results:
			n++
			switch {
			case r.err == nil:
				b.set(r.index, stateDone)
			case canceled(r.err):
				b.set(r.index, stateCancelled)
			default:
				b.set(r.index, stateFailed)
				failures = append(failures, r)
				// Give up on the rest at the first failure.
				cancel()
			}
		case <-ticker.C:
			b.render()
		}
	}
	b.render()
	return report(tasks, failures)
}

func runSequential(tasks []task) error {
	ctx := context.Background()
	b := newBoard(tasks)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()
	for i, t := range tasks {
		b.set(i, stateRunning)
		done := make(chan result, 1)
		go func(i int, t task) {
			stdout, stderr, err := t.fn(ctx)
			done <- result{i, stdout, stderr, err}
		}(i, t)
		var r result
	wait:
		for {
			select {
			case r = <-done:
				break wait
			case <-ticker.C:
				b.render()
			}
		}
		if r.err != nil {
			b.set(i, stateFailed)
			b.render()
			return report(tasks, []result{r})
		}
		b.set(i, stateDone)
	}
	b.render()
	return nil
}

func runSingle(name string, fn taskFn) error {
	return runParallel([]task{{name: name, fn: fn}})
}

func report(tasks []task, failures []result) error {
	if len(failures) == 0 {
		return nil
	}
	fmt.Println()
	for _, r := range failures {
		if interactive {
			fmt.Printf(ansiRed+"✗ %s failed:"+ansiReset+"\n", tasks[r.index].name)
			printFailure(r, "  ")
		} else {
			fmt.Printf("=== %s failed ===\n", tasks[r.index].name)
			printFailure(r, "")
		}
	}
	return fmt.Errorf("%d task(s) failed", len(failures))
}

func printFailure(r result, prefix string) {
	if r.stdout != "" {
		fmt.Println(indent(r.stdout, prefix))
	}
	if r.err != nil && r.err.Error() != "exit status 1" {
		fmt.Printf("%s%v\n", prefix, r.err)
	}
}

func indent(s, prefix string) string {
	if prefix == "" {
		return strings.TrimRight(s, "\n")
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func runQuiet(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outbuf, errbuf bytes.Buffer
	cmd.Stdout = &outbuf
	cmd.Stderr = &errbuf
	err := cmd.Run()
	return outbuf.String(), errbuf.String(), err
}

func runLoud(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var outbuf, errbuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(os.Stdout, &outbuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &errbuf)
	err := cmd.Run()
	return outbuf.String(), errbuf.String(), err
}
