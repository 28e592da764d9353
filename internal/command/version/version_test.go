// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"bytes"
	"context"
	"testing"

	"github.com/attache-dev/attache/pkg/act/cli"
)

func TestHandlerPrintsVersion(t *testing.T) {
	var out bytes.Buffer
	deps := &Deps{IO: cli.IO{Out: &out}}
	if _, err := Handler(context.Background(), Config{}, deps); err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if got, want := out.String(), Version+"\n"; got != want {
		t.Errorf("Handler() output = %q, want %q", got, want)
	}
}
