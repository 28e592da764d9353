// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package console provides the conversational command box of the terminal UI.
package console

import (
	"context"
	"fmt"

	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
)

// Identity labels a side of the conversation.
type Identity string

const (
	User      = Identity("you")
	Assistant = Identity("attache")
)

// ErrCloseConsole is returned by a Backend to dismiss the console.
var ErrCloseConsole = errors.New("close console")

// Message is one line of the conversation.
type Message struct {
	Who     Identity
	Content string
}

// Backend interprets one input line, streaming replies into out and closing
// it when the line is fully handled. Echoing the input is the backend's
// choice. Cancellation of ctx means the user has moved on to the next line.
type Backend interface {
	HandleInput(ctx context.Context, in string, out chan<- *Message) error
}

// Console is a prompt-and-reply box: a scrolling transcript above a one-line
// input area.
type Console struct {
	app        *tview.Application
	widget     *tview.Flex
	history    *tview.TextView
	input      *tview.TextArea
	handler    Backend
	cancelPrev func()
	closed     chan bool
}

// ConsoleOpts configures the prompt title and an opening message.
type ConsoleOpts struct {
	InputHeader string
	Welcome     string
}

func NewConsole(app *tview.Application, handler Backend, opts ConsoleOpts) *Console {
	c := &Console{
		app:     app,
		handler: handler,
		history: tview.NewTextView(),
		input:   tview.NewTextArea(),
		closed:  make(chan bool),
	}
	if opts.Welcome != "" {
		c.renderMessage(&Message{Who: Assistant, Content: opts.Welcome})
	}
	c.history.ScrollToEnd()
	c.input.SetBorder(true)
	if opts.InputHeader != "" {
		c.input.SetTitle(opts.InputHeader)
	}
	c.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() != tcell.KeyEnter {
			return event
		}
		c.submit()
		return nil
	})
	const flexed, unit = 0, 1
	c.widget = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(c.history, flexed, unit, false).
		AddItem(c.input, 3, 0, true)
	c.widget.SetBorder(true)
	return c
}

// submit hands the current line to the backend, canceling whatever handler
// the previous line may still be running.
func (c *Console) submit() {
	ctx, cancel := context.WithCancel(context.Background())
	line := c.input.GetText()
	c.input.SetText("", true)
	go c.HandleInput(ctx, line)
	if c.cancelPrev != nil {
		c.cancelPrev()
	}
	c.cancelPrev = cancel
}

// HandleInput runs the backend over one input line, rendering its replies as
// they arrive.
func (c *Console) HandleInput(ctx context.Context, in string) {
	out := make(chan *Message)
	go func() {
		for msg := range out {
			c.app.QueueUpdateDraw(func() { c.renderMessage(msg) })
		}
	}()
	switch err := c.handler.HandleInput(ctx, in, out); {
	case errors.Is(err, ErrCloseConsole):
		c.closed <- true
	case err != nil:
		go c.app.QueueUpdateDraw(func() {
			c.renderMessage(&Message{Who: Assistant, Content: errors.Wrap(err, "handling input").Error()})
		})
	}
}

func (c *Console) renderMessage(msg *Message) {
	fmt.Fprintf(c.history, "\n%s: %s", msg.Who, msg.Content)
}

// Widget returns the console for modal display.
func (c *Console) Widget() modal.InputCaptureable {
	return c.widget
}

// Done reports the backend asking for the console to be dismissed.
func (c *Console) Done() <-chan bool {
	return c.closed
}
