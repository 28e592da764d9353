// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package ui contains UI and state management code for the attache terminal
// assistant.
package ui

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/attache-dev/attache/internal/history"
	"github.com/attache-dev/attache/internal/ui/commands"
	"github.com/attache-dev/attache/internal/ui/console"
	"github.com/attache-dev/attache/internal/ui/explorer"
	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const birthdayHorizon = 7

// appCmd is an application-level hotkey, active regardless of selection.
type appCmd struct {
	Name string
	Key  rune
	Do   func()
}

// TuiApp represents the entire terminal assistant, containing UI widgets and
// the command registry.
type TuiApp struct {
	ctx       context.Context
	app       *tview.Application
	root      *tview.Pages
	explorer  *explorer.Explorer
	statusBox *tview.TextView
	logs      *tview.TextView
	cmds      []appCmd
	watch     store.Watcher
	helpText  string
}

// NewTuiApp creates a new TuiApp object.
func NewTuiApp(ctx context.Context, client store.Client, snaps store.Snapshotter, watch store.Watcher, rec history.Recorder, backend console.Backend, dataDir string) (*TuiApp, error) {
	app := tview.NewApplication()
	t := &TuiApp{
		ctx: ctx,
		app: app,
		// The pane redirects the default logger, so build it first.
		logs:      newLogsPane(app),
		statusBox: tview.NewTextView().SetChangedFunc(func() { app.Draw() }),
		watch:     watch,
	}
	modalFn := func(contents modal.InputCaptureable, opts modal.ModalOpts) func() {
		return modal.Show(t.app, t.root, contents, opts)
	}
	refresh := func() {
		go func() {
			if err := t.explorer.LoadTree(t.ctx); err != nil {
				log.Println(err)
				return
			}
			t.app.Draw()
		}()
	}
	show := func(records []book.Record) { t.explorer.ShowContacts(records) }
	reg := commands.Registry{}
	if err := reg.AddContacts(commands.NewContactCmds(t.app, modalFn, client, rec, refresh)...); err != nil {
		return nil, err
	}
	if err := reg.AddNotes(commands.NewNoteCmds(t.app, modalFn, client, rec, refresh)...); err != nil {
		return nil, err
	}
	if err := reg.AddGlobals(commands.NewGlobalCmds(t.app, modalFn, client, snaps, rec, backend, refresh, show)...); err != nil {
		return nil, err
	}
	t.explorer = explorer.NewExplorer(t.app, modalFn, client, reg)
	t.cmds = []appCmd{
		{
			Name: "birthdays",
			Key:  'b',
			Do:   func() { t.showBirthdays(client) },
		},
		{
			Name: "logs up",
			Key:  '^',
			Do:   t.scrollLogsUp,
		},
		{
			Name: "logs bottom",
			Key:  'v',
			Do:   func() { t.logs.ScrollToEnd() },
		},
		{
			Name: "help",
			Key:  '?',
			Do: func() {
				help := tview.NewTextView()
				help.SetText(t.helpText)
				help.SetBorder(true).SetTitle("Keybindings")
				modalFn(help, modal.ModalOpts{Margin: 10})
			},
		},
	}
	t.helpText = helpText(reg, t.cmds)
	t.root = t.layout(reg)
	t.statusBox.SetText(fmt.Sprintf("data home: %s", dataDir))
	t.app.SetRoot(t.root, true).SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		for _, cmd := range t.cmds {
			if event.Rune() != cmd.Key {
				continue
			}
			go cmd.Do()
			break
		}
		return event
	})
	return t, nil
}

// layout assembles the window: explorer beside logs, over a one-line bar of
// instructions and status.
func (t *TuiApp) layout(reg commands.Registry) *tview.Pages {
	/*             window
	┌───────────────────────────────────┐
	│┼─────────────────────────────────┼│
	││               .                 ││
	││               .                 ││
	││          ◄-mainPane-►           ││
	││               .                 ││
	││               .                 ││
	││  explorer     .      logs       ││
	││               .                 ││
	││               .                 ││
	│┼─────────────────────────────────┼│
	├───────────────────────────────────┤
	│  instr   ◄-bottomBar-►    status  │
	└───────────────────────────────────┘
	*/
	const flexed, unit = 0, 1
	mainPane := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(t.explorer.Container(), flexed, unit, true).
		AddItem(t.logs, flexed, unit, false)
	bottomBar := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(t.instructions(reg), flexed, unit, false).
		AddItem(t.statusBox, flexed, unit, false)
	window := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(mainPane, flexed, unit, true).
		AddItem(bottomBar, unit, 0, false)
	return tview.NewPages().AddPage("main window", window, true, true)
}

// showBirthdays swaps the explorer to the contacts celebrating within the
// horizon.
func (t *TuiApp) showBirthdays(client store.Client) {
	records, err := client.Contacts(t.ctx, store.Query{})
	if err != nil {
		log.Println(err)
		return
	}
	upcoming := store.UpcomingBirthdays(records, time.Now(), birthdayHorizon)
	if len(upcoming) == 0 {
		t.modalText(fmt.Sprintf("No birthdays in the next %d days.", birthdayHorizon))
		return
	}
	celebrating := make([]book.Record, 0, len(upcoming))
	for _, u := range upcoming {
		celebrating = append(celebrating, u.Record)
	}
	log.Printf("Found %d birthdays in the next %d days", len(upcoming), birthdayHorizon)
	t.explorer.ShowContacts(celebrating)
}

// scrollLogsUp pages the log view up, keeping a few lines of overlap.
func (t *TuiApp) scrollLogsUp() {
	row, _ := t.logs.GetScrollOffset()
	_, _, _, height := t.logs.GetInnerRect()
	t.logs.ScrollTo(max(row-height+5, 0), 0)
}

func (t *TuiApp) instructions(reg commands.Registry) *tview.TextView {
	var inst []string
	for _, cmd := range reg.GlobalCommands() {
		if cmd.Hotkey == 0 {
			continue
		}
		inst = append(inst, fmt.Sprintf("%c: %s", cmd.Hotkey, cmd.Short))
	}
	for _, cmd := range t.cmds {
		inst = append(inst, fmt.Sprintf("%c: %s", cmd.Key, cmd.Name))
	}
	return tview.NewTextView().SetText(strings.Join(inst, " "))
}

func helpText(reg commands.Registry, cmds []appCmd) string {
	var lines []string
	for _, cmd := range reg.GlobalCommands() {
		if cmd.Hotkey == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %c: %s", cmd.Hotkey, cmd.Short))
	}
	for _, cmd := range cmds {
		lines = append(lines, fmt.Sprintf("  %c: %s", cmd.Key, cmd.Name))
	}
	lines = append(lines, "", "with a contact selected:")
	for _, cmd := range reg.ContactCommands() {
		if cmd.Hotkey == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %c: %s", cmd.Hotkey, cmd.Short))
	}
	lines = append(lines, "", "with a note selected:")
	for _, cmd := range reg.NoteCommands() {
		if cmd.Hotkey == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %c: %s", cmd.Hotkey, cmd.Short))
	}
	return strings.Join(lines, "\n")
}

func (t *TuiApp) modalText(content string) {
	modal.Text(t.app, t.root, content)
}

// followStore refreshes the tree whenever a write lands outside the command
// flows, like an assistant console session storing a record.
func (t *TuiApp) followStore() {
	contactEvents := t.watch.WatchContacts()
	noteEvents := t.watch.WatchNotes()
	for {
		select {
		case <-t.ctx.Done():
			return
		case <-contactEvents:
		case <-noteEvents:
		}
		if err := t.explorer.LoadTree(t.ctx); err != nil {
			log.Println(err)
			continue
		}
		t.app.Draw()
	}
}

// Run starts the event loop and blocks until the application exits.
func (t *TuiApp) Run() error {
	go func() {
		if err := t.explorer.LoadTree(t.ctx); err != nil {
			log.Println(err)
			return
		}
		t.app.Draw()
		log.Println("Explorer tree loaded.")
	}()
	go t.followStore()
	return t.app.Run()
}
