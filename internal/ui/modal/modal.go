// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package modal overlays primitives on top of a page container.
package modal

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const background = tcell.ColorDarkCyan

// InputCaptureable is a primitive whose key events can be intercepted.
type InputCaptureable interface {
	tview.Primitive
	GetInputCapture() func(event *tcell.EventKey) *tcell.EventKey
	SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey) *tview.Box
}

// ModalOpts sizes the overlay. Zero Width or Height means the full
// container dimension; Margin is enforced on top of either.
type ModalOpts struct {
	Height int
	Width  int
	Margin int
}

// pageSeq names overlay pages uniquely even after removals.
var pageSeq atomic.Int64

// Show overlays contents on the container until ESC is pressed or the
// returned exitFunc is called.
func Show(app *tview.Application, container *tview.Pages, contents InputCaptureable, opts ModalOpts) (exitFunc func()) {
	name := fmt.Sprintf("modal%d", pageSeq.Add(1))
	exitFunc = func() { container.RemovePage(name) }
	prior := contents.GetInputCapture()
	contents.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyESC {
			return event
		}
		contents.SetInputCapture(prior)
		exitFunc()
		// Swallow the event so primitives underneath never see it.
		return nil
	})
	_, _, cw, ch := container.GetInnerRect()
	w, h := opts.Width, opts.Height
	if w == 0 {
		w = cw
	}
	if h == 0 {
		h = ch
	}
	w = min(w, cw-2*opts.Margin)
	h = min(h, ch-2*opts.Margin)
	app.QueueUpdateDraw(func() {
		container.AddPage(name, center(contents, ch-h, cw-w), true, true)
	})
	return exitFunc
}

// center pads p with the given total margins, splitting each across both
// sides. Odd remainders land on the bottom and right.
func center(p tview.Primitive, vertMargin, horizMargin int) tview.Primitive {
	top, bottom := split(vertMargin)
	left, right := split(horizMargin)
	inner := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, top, 0, false).
		AddItem(p, 0, 1, true).
		AddItem(nil, bottom, 0, false)
	return tview.NewFlex().
		AddItem(nil, left, 0, false).
		AddItem(inner, 0, 1, true).
		AddItem(nil, right, 0, false)
}

func split(n int) (lead, trail int) {
	return n / 2, n - n/2
}

// Text shows a single-line message in a centered modal.
func Text(app *tview.Application, container *tview.Pages, contents string) {
	tv := tview.NewTextView()
	tv.SetText("\n" + contents + "\n").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorWhite).
		SetBackgroundColor(background)
	Show(app, container, tv, ModalOpts{Height: 3, Margin: 10})
}
