// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package details renders a record as YAML for modal display.
package details

import (
	"bytes"

	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
	"gopkg.in/yaml.v3"
)

const background = tcell.ColorGray

// Format renders v as indented YAML.
func Format(v any) (string, error) {
	buf := new(bytes.Buffer)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(err, "marshalling details")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, "finalizing details")
	}
	return buf.String(), nil
}

// View returns a read-only YAML rendering of v.
func View(title string, v any) (modal.InputCaptureable, error) {
	text, err := Format(v)
	if err != nil {
		return nil, err
	}
	tv := tview.NewTextView()
	// Note bodies can exceed the modal width.
	tv.SetWordWrap(true)
	tv.SetText(text).SetBackgroundColor(background).SetTitle(title)
	return tv, nil
}
