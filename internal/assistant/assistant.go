// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package assistant interprets console commands against the data set.
package assistant

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/attache-dev/attache/internal/history"
	"github.com/attache-dev/attache/internal/textwrap"
	"github.com/attache-dev/attache/internal/ui/console"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
)

var helpText = textwrap.Dedent(`
	Commands:
	  add contact <name>              create a contact
	  find <term>                     search contacts by name, phone, or email
	  note <title>: <content> [#tag]  create a tagged note
	  show                            list every contact
	  delete contact <id>             remove a contact
	  delete note <id>                remove a note
	  birthdays [n]                   contacts with birthdays in the next n days (default 7)
	  help                            this text
	  quit                            close the console`)[1:] // remove leading newline

// cmdFunc SHOULD NOT close the out channel. The invoking code may still use
// the out channel after the cmdFunc has completed.
type cmdFunc func(ctx context.Context, args string, out chan<- *console.Message) error

// Assistant is the console.Backend behind the conversational command box.
type Assistant struct {
	client store.Client
	rec    history.Recorder
	now    func() time.Time
	cmds   map[string]cmdFunc
}

var _ console.Backend = (*Assistant)(nil)

func NewAssistant(client store.Client, rec history.Recorder) *Assistant {
	a := &Assistant{
		client: client,
		rec:    rec,
		now:    time.Now,
	}
	a.cmds = map[string]cmdFunc{
		"add":       a.addContact,
		"find":      a.findContacts,
		"note":      a.addNote,
		"show":      a.showContacts,
		"delete":    a.deleteRecord,
		"birthdays": a.birthdays,
		"help": func(ctx context.Context, args string, out chan<- *console.Message) error {
			out <- &console.Message{Who: console.Assistant, Content: helpText}
			return nil
		},
	}
	for _, word := range []string{"quit", "exit", "close"} {
		a.cmds[word] = func(ctx context.Context, args string, out chan<- *console.Message) error {
			out <- &console.Message{Who: console.Assistant, Content: "Good bye!"}
			return console.ErrCloseConsole
		}
	}
	return a
}

func (a *Assistant) HandleInput(ctx context.Context, in string, out chan<- *console.Message) error {
	defer close(out)
	in = strings.TrimSpace(in)
	if in == "" {
		return nil
	}
	out <- &console.Message{Who: console.User, Content: in}
	word, args, _ := strings.Cut(in, " ")
	fn, ok := a.cmds[strings.ToLower(word)]
	if !ok {
		out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("I don't know %q. Type help for a list of commands.", word)}
		return nil
	}
	err := fn(ctx, strings.TrimSpace(args), out)
	if errors.Is(err, console.ErrCloseConsole) {
		return err
	} else if err != nil {
		out <- &console.Message{Who: console.Assistant, Content: err.Error()}
	}
	return nil
}

func (a *Assistant) addContact(ctx context.Context, args string, out chan<- *console.Message) error {
	rest, ok := strings.CutPrefix(args, "contact ")
	if !ok {
		return errors.New("want: add contact <name>")
	}
	name, err := book.NewName(strings.TrimSpace(rest))
	if err != nil {
		return err
	}
	r, err := a.client.PutContact(ctx, book.NewRecord(name))
	if err != nil {
		return errors.Wrap(err, "storing contact")
	}
	if err := a.rec.Record(ctx, fmt.Sprintf("contact add: %s", name)); err != nil {
		return errors.Wrap(err, "recording change")
	}
	out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("Added contact %s with ID %d.", name, r.ID)}
	return nil
}

func (a *Assistant) findContacts(ctx context.Context, args string, out chan<- *console.Message) error {
	if args == "" {
		return errors.New("want: find <term>")
	}
	records, err := a.client.Contacts(ctx, store.Query{Term: args})
	if err != nil {
		return errors.Wrap(err, "searching contacts")
	}
	if len(records) == 0 {
		out <- &console.Message{Who: console.Assistant, Content: "No matches."}
		return nil
	}
	for _, r := range records {
		out <- &console.Message{Who: console.Assistant, Content: r.String()}
	}
	return nil
}

// addNote parses "note <title>: <content> [#tag ...]"; hash-prefixed words
// anywhere in the content become tags.
func (a *Assistant) addNote(ctx context.Context, args string, out chan<- *console.Message) error {
	title, rest, ok := strings.Cut(args, ":")
	title = strings.TrimSpace(title)
	if !ok || title == "" {
		return errors.New("want: note <title>: <content> [#tag ...]")
	}
	var tags []string
	var content []string
	for _, word := range strings.Fields(rest) {
		if tag, ok := strings.CutPrefix(word, "#"); ok && tag != "" {
			tags = append(tags, tag)
		} else {
			content = append(content, word)
		}
	}
	n, err := a.client.PutNote(ctx, note.New(title, strings.Join(content, " "), tags))
	if err != nil {
		return errors.Wrap(err, "storing note")
	}
	if err := a.rec.Record(ctx, fmt.Sprintf("note add: %s", title)); err != nil {
		return errors.Wrap(err, "recording change")
	}
	out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("Added note %q with ID %d.", n.Title, n.ID)}
	return nil
}

func (a *Assistant) showContacts(ctx context.Context, args string, out chan<- *console.Message) error {
	records, err := a.client.Contacts(ctx, store.Query{})
	if err != nil {
		return errors.Wrap(err, "listing contacts")
	}
	if len(records) == 0 {
		out <- &console.Message{Who: console.Assistant, Content: "The address book is empty."}
		return nil
	}
	for _, r := range records {
		out <- &console.Message{Who: console.Assistant, Content: r.String()}
	}
	return nil
}

func (a *Assistant) deleteRecord(ctx context.Context, args string, out chan<- *console.Message) error {
	kind, rest, _ := strings.Cut(args, " ")
	id, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return errors.New("want: delete contact <id> or delete note <id>")
	}
	switch kind {
	case "contact":
		if err := a.client.DeleteContact(ctx, id); err != nil {
			return err
		}
		if err := a.rec.Record(ctx, fmt.Sprintf("contact rm: %d", id)); err != nil {
			return errors.Wrap(err, "recording change")
		}
		out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("Deleted contact %d.", id)}
	case "note":
		if err := a.client.DeleteNote(ctx, id); err != nil {
			return err
		}
		if err := a.rec.Record(ctx, fmt.Sprintf("note rm: %d", id)); err != nil {
			return errors.Wrap(err, "recording change")
		}
		out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("Deleted note %d.", id)}
	default:
		return errors.New("want: delete contact <id> or delete note <id>")
	}
	return nil
}

func (a *Assistant) birthdays(ctx context.Context, args string, out chan<- *console.Message) error {
	within := 7
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 0 {
			return errors.Errorf("invalid day count %q", args)
		}
		within = n
	}
	records, err := a.client.Contacts(ctx, store.Query{})
	if err != nil {
		return errors.Wrap(err, "listing contacts")
	}
	upcoming := store.UpcomingBirthdays(records, a.now(), within)
	if len(upcoming) == 0 {
		out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("No birthdays in the next %d days.", within)}
		return nil
	}
	for _, u := range upcoming {
		var when string
		switch u.Days {
		case 0:
			when = "today"
		case 1:
			when = "tomorrow"
		default:
			when = fmt.Sprintf("in %d days", u.Days)
		}
		out <- &console.Message{Who: console.Assistant, Content: fmt.Sprintf("%s has a birthday %s (%s).", u.Record.Name, when, u.Record.Birthday)}
	}
	return nil
}
