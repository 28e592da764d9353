// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package choice provides a modal list picker.
package choice

import (
	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const background = tcell.ColorDarkCyan

// Choice returns a list picker and the channel delivering the selected
// option. The first nine entries get numeric shortcuts.
func Choice(title string, all []string) (modal.InputCaptureable, modal.ModalOpts, <-chan string) {
	list := tview.NewList()
	list.SetBackgroundColor(background).SetBorder(true).SetTitle(title)
	selected := make(chan string, 1)
	for i, option := range all {
		var shortcut rune
		if i < 9 {
			shortcut = rune('1' + i)
		}
		list.AddItem(option, "", shortcut, func() {
			selected <- option
			close(selected)
		})
	}
	return list, modal.ModalOpts{Height: 2*list.GetItemCount() + 2, Margin: 10}, selected
}
