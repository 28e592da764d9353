// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"log"

	"github.com/rivo/tview"
)

func logPrefix(name string) string {
	return fmt.Sprintf("[%-9s]", name)
}

// newLogsPane builds the scrolling log view and points the default logger
// at it. Writes redraw the application so new lines appear immediately.
func newLogsPane(app *tview.Application) *tview.TextView {
	logs := tview.NewTextView().SetChangedFunc(func() { app.Draw() })
	log.Default().SetOutput(logs)
	log.Default().SetPrefix(logPrefix("attache"))
	log.Default().SetFlags(0)
	logs.SetBorder(true).SetTitle("Logs")
	logs.ScrollToEnd()
	return logs
}
