// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package act models commands as transport-agnostic actions so the same
// handler can back a cobra command, the terminal UI, or a test harness.
package act

import "context"

// Input is a validated action configuration.
type Input interface {
	Validate() error
}

// Deps marks a dependency container.
type Deps any

// InitDeps builds an action's dependencies from its context.
type InitDeps[D Deps] func(context.Context) (D, error)

// Action executes one operation against its dependencies.
type Action[I Input, O any, D Deps] func(context.Context, I, D) (*O, error)

// NoOutput is the result of an action run only for its side effects.
type NoOutput struct{}
