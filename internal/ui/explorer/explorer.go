// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package explorer renders the store as a navigable tree and table.
package explorer

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/attache-dev/attache/internal/ui/commands"
	detailsui "github.com/attache-dev/attache/internal/ui/details"
	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
)

const (
	treePage  = "treeView"
	tablePage = "tableView"
)

// modalFnType shows an InputCaptureable and returns the function closing it.
type modalFnType func(modal.InputCaptureable, modal.ModalOpts) func()

// Explorer is the navigation pane: a tree of contacts and notes with a table
// view it can swap in for any listing.
type Explorer struct {
	app       *tview.Application
	container *tview.Pages
	table     *tview.Table
	tree      *tview.TreeView
	root      *tview.TreeNode
	client    store.Client
	cmdReg    commands.Registry
	modalFn   modalFnType
}

// boundCmd is a registry command with its record argument already applied,
// ready to back a tree leaf or a hotkey.
type boundCmd struct {
	short  string
	hotkey rune
	invoke func()
}

// dispatch fires the first command whose hotkey matches the event, reporting
// whether one did.
func dispatch(event *tcell.EventKey, cmds []boundCmd) bool {
	for _, cmd := range cmds {
		if cmd.hotkey == 0 || cmd.hotkey != event.Rune() {
			continue
		}
		cmd.invoke()
		return true
	}
	return false
}

func NewExplorer(app *tview.Application, modalFn modalFnType, client store.Client, cmdReg commands.Registry) *Explorer {
	e := Explorer{
		app:       app,
		container: tview.NewPages(),
		table:     tview.NewTable().SetBorders(true),
		tree:      tview.NewTreeView(),
		root:      tview.NewTreeNode("attache").SetColor(tcell.ColorRed),
		client:    client,
		cmdReg:    cmdReg,
		modalFn:   modalFn,
	}
	e.tree.SetRoot(e.root).SetCurrentNode(e.root)
	e.tree.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch current := e.tree.GetCurrentNode().GetReference().(type) {
		case *book.Record:
			if current != nil && dispatch(event, e.boundContactCmds(*current)) {
				return nil
			}
		case *note.Note:
			if current != nil && dispatch(event, e.boundNoteCmds(*current)) {
				return nil
			}
		}
		if dispatch(event, e.boundGlobalCmds()) {
			return nil
		}
		return event
	})
	resize, show := true, true
	e.container.AddPage(tablePage, e.table, resize, !show)
	e.container.AddPage(treePage, e.tree, resize, show)
	e.SelectTree()
	return &e
}

func (e *Explorer) Container() tview.Primitive {
	return e.container
}

func (e *Explorer) boundContactCmds(r book.Record) []boundCmd {
	var res []boundCmd
	for _, cmd := range e.cmdReg.ContactCommands() {
		if cmd.Func == nil {
			continue
		}
		res = append(res, boundCmd{cmd.Short, cmd.Hotkey, func() { go cmd.Func(context.Background(), r) }})
	}
	return res
}

func (e *Explorer) boundNoteCmds(n note.Note) []boundCmd {
	var res []boundCmd
	for _, cmd := range e.cmdReg.NoteCommands() {
		if cmd.Func == nil {
			continue
		}
		res = append(res, boundCmd{cmd.Short, cmd.Hotkey, func() { go cmd.Func(context.Background(), n) }})
	}
	return res
}

func (e *Explorer) boundGlobalCmds() []boundCmd {
	var res []boundCmd
	for _, cmd := range e.cmdReg.GlobalCommands() {
		if cmd.Func == nil {
			continue
		}
		res = append(res, boundCmd{cmd.Short, cmd.Hotkey, func() { go cmd.Func(context.Background()) }})
	}
	return res
}

// commandNodes renders bound commands as selectable leaves.
func commandNodes(cmds []boundCmd) []*tview.TreeNode {
	var res []*tview.TreeNode
	for _, cmd := range cmds {
		res = append(res, tview.NewTreeNode(cmd.short).SetColor(tcell.ColorDarkCyan).SetSelectedFunc(cmd.invoke))
	}
	return res
}

// expandLazily populates node's children on first selection and toggles
// their visibility on later ones.
func expandLazily(node *tview.TreeNode, populate func() []*tview.TreeNode) *tview.TreeNode {
	node.SetSelectedFunc(func() {
		if len(node.GetChildren()) == 0 {
			for _, c := range populate() {
				node.AddChild(c)
			}
		} else {
			node.SetExpanded(!node.IsExpanded())
		}
	})
	return node
}

func (e *Explorer) makeContactNode(r book.Record) *tview.TreeNode {
	label := fmt.Sprintf("%s [%d]", r.Name, r.ID)
	node := tview.NewTreeNode(label).SetColor(tcell.ColorYellow).SetReference(&r)
	return expandLazily(node, func() []*tview.TreeNode {
		return commandNodes(e.boundContactCmds(r))
	})
}

func (e *Explorer) makeNoteNode(n note.Note) *tview.TreeNode {
	label := fmt.Sprintf("%s [%d]", n.Title, n.ID)
	node := tview.NewTreeNode(label).SetColor(tcell.ColorYellow).SetReference(&n)
	return expandLazily(node, func() []*tview.TreeNode {
		return commandNodes(e.boundNoteCmds(n))
	})
}

func (e *Explorer) makeInitialGroupNode(g *store.InitialGroup) *tview.TreeNode {
	node := tview.NewTreeNode(fmt.Sprintf("%4d %s", g.Count, g.Initial)).SetColor(tcell.ColorGreen).SetSelectable(true).SetReference(g)
	return expandLazily(node, func() []*tview.TreeNode {
		var res []*tview.TreeNode
		for _, r := range g.Records {
			res = append(res, e.makeContactNode(r))
		}
		return res
	})
}

func (e *Explorer) makeTagGroupNode(g *store.TagGroup) *tview.TreeNode {
	tag := g.Tag
	if tag == "" {
		tag = "(untagged)"
	}
	node := tview.NewTreeNode(fmt.Sprintf("%4d %s", g.Count, tag)).SetColor(tcell.ColorGreen).SetSelectable(true).SetReference(g)
	return expandLazily(node, func() []*tview.TreeNode {
		res := []*tview.TreeNode{tview.NewTreeNode("View as table").SetColor(tcell.ColorDarkCyan).SetSelectedFunc(func() {
			e.populateNoteTable(g.Notes)
			e.SelectTable()
		})}
		for _, n := range g.Notes {
			res = append(res, e.makeNoteNode(n))
		}
		return res
	})
}

// branchNode is a toggling group heading.
func branchNode(label string) *tview.TreeNode {
	node := tview.NewTreeNode(label).SetColor(tcell.ColorGreen).SetSelectable(true)
	node.SetSelectedFunc(func() { node.SetExpanded(!node.IsExpanded()) })
	return node
}

// LoadTree queries the store for all records, then displays them.
func (e *Explorer) LoadTree(ctx context.Context) error {
	records, err := e.client.Contacts(ctx, store.Query{})
	if err != nil {
		return errors.Wrap(err, "fetching contacts")
	}
	notes, err := e.client.Notes(ctx, store.NoteQuery{})
	if err != nil {
		return errors.Wrap(err, "fetching notes")
	}
	log.Printf("Loaded %d contacts and %d notes", len(records), len(notes))
	e.root.ClearChildren()
	contactsNode := branchNode(fmt.Sprintf("Contacts (%d)", len(records)))
	for _, g := range store.GroupByInitial(records) {
		contactsNode.AddChild(e.makeInitialGroupNode(g))
	}
	notesNode := branchNode(fmt.Sprintf("Notes (%d)", len(notes)))
	for _, g := range store.GroupByTag(notes) {
		notesNode.AddChild(e.makeTagGroupNode(g))
	}
	e.root.AddChild(contactsNode)
	e.root.AddChild(notesNode)
	return nil
}

func (e *Explorer) SelectTree() {
	e.container.SwitchToPage(treePage)
}

func (e *Explorer) SelectTable() {
	e.container.SwitchToPage(tablePage)
}

func addHeader(table *tview.Table, headers []string) {
	for i, h := range headers {
		table.SetCell(0, i, tview.NewTableCell(h).SetTextColor(tcell.ColorYellow).SetSelectable(false))
	}
	table.SetFixed(1, 0)
}

func addRow(table *tview.Table, row int, elems []string) {
	for i, e := range elems {
		table.SetCellSimple(row, i, e)
	}
}

// joined renders a list of string-typed values separated by commas.
func joined[T ~string](vals []T) string {
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}

// presentTable finishes table setup: initial selection, details on Enter,
// and hotkey dispatch for the selected row.
func (e *Explorer) presentTable(rows int, details func(i int) (modal.InputCaptureable, error), bound func(i int) []boundCmd) {
	if rows > 0 {
		e.table.Select(1, 0)
	}
	e.table.ScrollToBeginning()
	e.table.SetSelectable(true, false)
	e.table.SetSelectedFunc(func(row, column int) {
		deets, err := details(row - 1)
		if err != nil {
			log.Println(err)
			return
		}
		go e.modalFn(deets, modal.ModalOpts{Margin: 10})
	})
	e.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyESC {
			e.SelectTree()
			return nil
		}
		row, _ := e.table.GetSelection()
		if row >= 1 && row <= rows && dispatch(event, bound(row-1)) {
			return nil
		}
		if dispatch(event, e.boundGlobalCmds()) {
			return nil
		}
		return event
	})
}

func (e *Explorer) populateContactTable(records []book.Record) {
	e.table.Clear()
	addHeader(e.table, []string{"ID", "Name", "Phones", "Emails", "Birthday"})
	for i, r := range records {
		addRow(e.table, i+1, []string{strconv.Itoa(r.ID), string(r.Name), joined(r.Phones), joined(r.Emails), string(r.Birthday)})
	}
	e.presentTable(len(records),
		func(i int) (modal.InputCaptureable, error) { return detailsui.View("Contact details", records[i]) },
		func(i int) []boundCmd { return e.boundContactCmds(records[i]) })
}

func (e *Explorer) populateNoteTable(notes []note.Note) {
	e.table.Clear()
	addHeader(e.table, []string{"ID", "Title", "Tags", "Created"})
	for i, n := range notes {
		addRow(e.table, i+1, []string{strconv.Itoa(n.ID), n.Title, strings.Join(n.Tags, ", "), n.Created.Format("2006-01-02")})
	}
	e.presentTable(len(notes),
		func(i int) (modal.InputCaptureable, error) { return detailsui.View("Note details", notes[i]) },
		func(i int) []boundCmd { return e.boundNoteCmds(notes[i]) })
}

// ShowContacts renders the records in the table view. Safe to call from any
// goroutine.
func (e *Explorer) ShowContacts(records []book.Record) {
	e.app.QueueUpdateDraw(func() {
		e.populateContactTable(records)
		e.SelectTable()
	})
}

// ShowNotes renders the notes in the table view. Safe to call from any
// goroutine.
func (e *Explorer) ShowNotes(notes []note.Note) {
	e.app.QueueUpdateDraw(func() {
		e.populateNoteTable(notes)
		e.SelectTable()
	})
}
