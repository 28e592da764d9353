// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli binds act actions to cobra commands.
package cli

import "io"

// IO carries the streams a command reads and writes. Handlers print user
// output to Out and keep diagnostics on Err.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}
