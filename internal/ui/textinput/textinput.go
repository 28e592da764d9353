// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package textinput provides a single-value modal prompt.
package textinput

import (
	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type TextInputOpts struct {
	Header string
	// Initial pre-fills the input, letting an edit keep the prior value.
	Initial string
}

// TextInput returns a one-line prompt widget and the channel its value is
// delivered on when the user presses Enter.
func TextInput(opts TextInputOpts) (modal.InputCaptureable, modal.ModalOpts, <-chan string) {
	area := tview.NewTextArea()
	if opts.Initial != "" {
		area.SetText(opts.Initial, true)
	}
	value := make(chan string, 1)
	area.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyEnter {
			return event
		}
		// A second Enter before the modal closes must not wedge the event loop.
		select {
		case value <- area.GetText():
		default:
		}
		return nil
	})
	// The flex border doubles as the prompt frame.
	frame := tview.NewFlex().SetDirection(tview.FlexRow).AddItem(area, 0, 1, true)
	frame.SetBorder(true)
	if opts.Header != "" {
		frame.SetTitle(opts.Header)
	}
	return frame, modal.ModalOpts{Width: 50, Height: 3}, value
}
