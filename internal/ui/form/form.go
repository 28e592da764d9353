// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package form provides a multi-field modal prompt.
package form

import (
	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/rivo/tview"
)

type Field struct {
	Label   string
	Initial string
	// Multiline renders a text area instead of a one-line input.
	Multiline bool
}

type FormOpts struct {
	Title  string
	Fields []Field
}

// Form returns a modal input form and the channel its values are delivered on
// when the user selects Save. Values are keyed by field label.
func Form(opts FormOpts) (modal.InputCaptureable, modal.ModalOpts, <-chan map[string]string) {
	f := tview.NewForm()
	height := 4
	for _, fl := range opts.Fields {
		if fl.Multiline {
			f.AddTextArea(fl.Label, fl.Initial, 40, 4, 0, nil)
			height += 5
		} else {
			f.AddInputField(fl.Label, fl.Initial, 40, nil, nil)
			height += 2
		}
	}
	output := make(chan map[string]string, 1)
	f.AddButton("Save", func() {
		values := make(map[string]string, len(opts.Fields))
		for i, fl := range opts.Fields {
			switch item := f.GetFormItem(i).(type) {
			case *tview.InputField:
				values[fl.Label] = item.GetText()
			case *tview.TextArea:
				values[fl.Label] = item.GetText()
			}
		}
		output <- values
	})
	f.SetBorder(true)
	if opts.Title != "" {
		f.SetTitle(opts.Title)
	}
	return f, modal.ModalOpts{Width: 60, Height: height, Margin: 4}, output
}
