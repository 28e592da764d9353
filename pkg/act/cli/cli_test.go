// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/attache-dev/attache/pkg/act"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type greetConfig struct {
	Name string
}

func (c greetConfig) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type greetDeps struct {
	IO IO
}

func (d *greetDeps) SetIO(cio IO) { d.IO = cio }

func newGreetDeps(ctx context.Context) (*greetDeps, error) {
	return &greetDeps{}, nil
}

func greet(ctx context.Context, cfg greetConfig, deps *greetDeps) (*act.NoOutput, error) {
	if _, err := deps.IO.Out.Write([]byte("Hello " + cfg.Name)); err != nil {
		return nil, err
	}
	return &act.NoOutput{}, nil
}

func nameFromArgs(cfg *greetConfig, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one name")
	}
	cfg.Name = args[0]
	return nil
}

// newGreetCmd builds a command around RunE with errors kept quiet so tests
// can assert on the returned value alone.
func newGreetCmd(cfg *greetConfig, parse ParseArgs[greetConfig], init act.InitDeps[*greetDeps]) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "greet",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          RunE(cfg, parse, init, greet),
	}
	// Without explicit args cobra would parse the test binary's flags.
	cmd.SetArgs([]string{})
	return cmd
}

func TestRunE(t *testing.T) {
	t.Run("threads args and IO through to the action", func(t *testing.T) {
		var cfg greetConfig
		cmd := newGreetCmd(&cfg, nameFromArgs, newGreetDeps)
		cmd.SetArgs([]string{"World"})
		var out bytes.Buffer
		cmd.SetOut(&out)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if got, want := out.String(), "Hello World"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})
	t.Run("surfaces parse failures", func(t *testing.T) {
		var cfg greetConfig
		cmd := newGreetCmd(&cfg, nameFromArgs, newGreetDeps)
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "exactly one name") {
			t.Errorf("Execute() error = %v, want parse failure", err)
		}
	})
	t.Run("surfaces validation failures", func(t *testing.T) {
		var cfg greetConfig
		cmd := newGreetCmd(&cfg, SkipArgs[greetConfig], newGreetDeps)
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "name is required") {
			t.Errorf("Execute() error = %v, want validation failure", err)
		}
	})
	t.Run("wraps dependency failures", func(t *testing.T) {
		cfg := greetConfig{Name: "World"}
		broken := func(ctx context.Context) (*greetDeps, error) {
			return nil, errors.New("store offline")
		}
		cmd := newGreetCmd(&cfg, SkipArgs[greetConfig], broken)
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "initializing dependencies") {
			t.Errorf("Execute() error = %v, want wrapped init failure", err)
		}
	})
	t.Run("returns action failures", func(t *testing.T) {
		cfg := greetConfig{Name: "World"}
		fail := func(ctx context.Context, cfg greetConfig, deps *greetDeps) (*act.NoOutput, error) {
			return nil, errors.New("greeting refused")
		}
		cmd := &cobra.Command{
			Use:           "greet",
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE:          RunE(&cfg, SkipArgs[greetConfig], newGreetDeps, fail),
		}
		cmd.SetArgs([]string{})
		err := cmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "greeting refused") {
			t.Errorf("Execute() error = %v, want action failure", err)
		}
	})
}

func TestSkipArgs(t *testing.T) {
	var cfg greetConfig
	if err := SkipArgs(&cfg, []string{"ignored", "extra"}); err != nil {
		t.Errorf("SkipArgs() error = %v", err)
	}
	if cfg.Name != "" {
		t.Errorf("SkipArgs() modified cfg: %+v", cfg)
	}
}
