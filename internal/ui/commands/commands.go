// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/attache-dev/attache/internal/history"
	"github.com/attache-dev/attache/internal/ui/choice"
	"github.com/attache-dev/attache/internal/ui/console"
	"github.com/attache-dev/attache/internal/ui/details"
	"github.com/attache-dev/attache/internal/ui/form"
	"github.com/attache-dev/attache/internal/ui/modal"
	"github.com/attache-dev/attache/internal/ui/textinput"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/pkg/errors"
	"github.com/rivo/tview"
)

// A modalFnType can be used to show an InputCaptureable. It returns an exit function that can be used to close the modal.
type modalFnType func(modal.InputCaptureable, modal.ModalOpts) func()

func contactFields(r book.Record) []form.Field {
	var street, city, postal, country string
	if r.Address != nil {
		street, city, postal, country = r.Address.Street, r.Address.City, r.Address.PostalCode, r.Address.Country
	}
	return []form.Field{
		{Label: "Name", Initial: string(r.Name)},
		{Label: "Phones", Initial: joinPhones(r.Phones)},
		{Label: "Emails", Initial: joinEmails(r.Emails)},
		{Label: "Birthday", Initial: string(r.Birthday)},
		{Label: "Street", Initial: street},
		{Label: "City", Initial: city},
		{Label: "Postal code", Initial: postal},
		{Label: "Country", Initial: country},
	}
}

func joinPhones(phones []book.Phone) string {
	parts := make([]string, 0, len(phones))
	for _, p := range phones {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ", ")
}

func joinEmails(emails []book.Email) string {
	parts := make([]string, 0, len(emails))
	for _, e := range emails {
		parts = append(parts, string(e))
	}
	return strings.Join(parts, ", ")
}

// applyContactForm overlays submitted form values onto a record. An empty
// field keeps the prior value, matching the edit flow of the CLI.
func applyContactForm(r book.Record, vals map[string]string) (book.Record, error) {
	if v := strings.TrimSpace(vals["Name"]); v != "" {
		name, err := book.NewName(v)
		if err != nil {
			return book.Record{}, err
		}
		r.Rename(name)
	} else if r.Name == "" {
		return book.Record{}, errors.New("a contact needs a name")
	}
	if v := strings.TrimSpace(vals["Phones"]); v != "" {
		var phones []book.Phone
		for _, s := range strings.Split(v, ",") {
			p, err := book.NewPhone(strings.TrimSpace(s))
			if err != nil {
				return book.Record{}, err
			}
			phones = append(phones, p)
		}
		r.Phones = phones
	}
	if v := strings.TrimSpace(vals["Emails"]); v != "" {
		var emails []book.Email
		for _, s := range strings.Split(v, ",") {
			e, err := book.NewEmail(strings.TrimSpace(s))
			if err != nil {
				return book.Record{}, err
			}
			emails = append(emails, e)
		}
		r.Emails = emails
	}
	if v := strings.TrimSpace(vals["Birthday"]); v != "" {
		b, err := book.NewBirthday(v)
		if err != nil {
			return book.Record{}, err
		}
		r.SetBirthday(b)
	}
	street, city := strings.TrimSpace(vals["Street"]), strings.TrimSpace(vals["City"])
	postal, country := strings.TrimSpace(vals["Postal code"]), strings.TrimSpace(vals["Country"])
	if street != "" || city != "" || postal != "" || country != "" {
		r.SetAddress(book.Address{Street: street, City: city, PostalCode: postal, Country: country})
	}
	return r, nil
}

func NewContactCmds(app *tview.Application, modalFn modalFnType, client store.Client, rec history.Recorder, refresh func()) []ContactCmd {
	putAndRecord := func(ctx context.Context, r book.Record, message string) {
		if _, err := client.PutContact(ctx, r); err != nil {
			log.Println(errors.Wrap(err, "storing contact"))
			return
		}
		if err := rec.Record(ctx, message); err != nil {
			log.Println(errors.Wrap(err, "recording change"))
		}
		refresh()
	}
	return []ContactCmd{
		{
			Hotkey: 'm',
			Short:  "details",
			Func: func(ctx context.Context, r book.Record) {
				if deets, err := details.View("Contact details", r); err != nil {
					log.Println(err.Error())
					return
				} else {
					modalFn(deets, modal.ModalOpts{Margin: 10})
				}
			},
		},
		{
			Hotkey: 'e',
			Short:  "edit",
			Func: func(ctx context.Context, r book.Record) {
				widget, opts, values := form.Form(form.FormOpts{Title: fmt.Sprintf("Edit contact %d", r.ID), Fields: contactFields(r)})
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				updated, err := applyContactForm(r, <-values)
				if err != nil {
					log.Println(err)
					return
				}
				putAndRecord(ctx, updated, fmt.Sprintf("contact edit: %d", updated.ID))
			},
		},
		{
			Hotkey: 'x',
			Short:  "delete",
			Func: func(ctx context.Context, r book.Record) {
				if err := client.DeleteContact(ctx, r.ID); err != nil {
					log.Println(errors.Wrap(err, "deleting contact"))
					return
				}
				if err := rec.Record(ctx, fmt.Sprintf("contact rm: %d", r.ID)); err != nil {
					log.Println(errors.Wrap(err, "recording change"))
				}
				log.Printf("Deleted contact %d", r.ID)
				refresh()
			},
		},
		{
			Short: "add phone",
			Func: func(ctx context.Context, r book.Record) {
				widget, opts, input := textinput.TextInput(textinput.TextInputOpts{Header: "Phone (nine digits)"})
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				phone, err := book.NewPhone(strings.TrimSpace(<-input))
				if err != nil {
					log.Println(err)
					return
				}
				r.AddPhone(phone)
				putAndRecord(ctx, r, fmt.Sprintf("contact edit: %d", r.ID))
			},
		},
		{
			Short: "add email",
			Func: func(ctx context.Context, r book.Record) {
				widget, opts, input := textinput.TextInput(textinput.TextInputOpts{Header: "Email address"})
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				email, err := book.NewEmail(strings.TrimSpace(<-input))
				if err != nil {
					log.Println(err)
					return
				}
				r.AddEmail(email)
				putAndRecord(ctx, r, fmt.Sprintf("contact edit: %d", r.ID))
			},
		},
	}
}

func NewNoteCmds(app *tview.Application, modalFn modalFnType, client store.Client, rec history.Recorder, refresh func()) []NoteCmd {
	return []NoteCmd{
		{
			Hotkey: 'm',
			Short:  "details",
			Func: func(ctx context.Context, n note.Note) {
				if deets, err := details.View("Note details", n); err != nil {
					log.Println(err.Error())
					return
				} else {
					modalFn(deets, modal.ModalOpts{Margin: 10})
				}
			},
		},
		{
			Hotkey: 'e',
			Short:  "edit",
			Func: func(ctx context.Context, n note.Note) {
				widget, opts, values := form.Form(form.FormOpts{
					Title: fmt.Sprintf("Edit note %d", n.ID),
					Fields: []form.Field{
						{Label: "Title", Initial: n.Title},
						{Label: "Content", Initial: n.Content, Multiline: true},
						{Label: "Tags", Initial: strings.Join(n.Tags, ", ")},
					},
				})
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				vals := <-values
				n.Update(vals["Title"], vals["Content"], note.ParseTags(vals["Tags"]))
				if _, err := client.PutNote(ctx, n); err != nil {
					log.Println(errors.Wrap(err, "storing note"))
					return
				}
				if err := rec.Record(ctx, fmt.Sprintf("note edit: %d", n.ID)); err != nil {
					log.Println(errors.Wrap(err, "recording change"))
				}
				refresh()
			},
		},
		{
			Hotkey: 'x',
			Short:  "delete",
			Func: func(ctx context.Context, n note.Note) {
				if err := client.DeleteNote(ctx, n.ID); err != nil {
					log.Println(errors.Wrap(err, "deleting note"))
					return
				}
				if err := rec.Record(ctx, fmt.Sprintf("note rm: %d", n.ID)); err != nil {
					log.Println(errors.Wrap(err, "recording change"))
				}
				log.Printf("Deleted note %d", n.ID)
				refresh()
			},
		},
	}
}

func NewGlobalCmds(app *tview.Application, modalFn modalFnType, client store.Client, snaps store.Snapshotter, rec history.Recorder, backend console.Backend, refresh func(), show func([]book.Record)) []GlobalCmd {
	return []GlobalCmd{
		{
			Hotkey: 'c',
			Short:  "add contact",
			Func: func(ctx context.Context) {
				widget, opts, values := form.Form(form.FormOpts{Title: "New contact", Fields: contactFields(book.Record{})})
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				r, err := applyContactForm(book.Record{}, <-values)
				if err != nil {
					log.Println(err)
					return
				}
				stored, err := client.PutContact(ctx, r)
				if err != nil {
					log.Println(errors.Wrap(err, "storing contact"))
					return
				}
				if err := rec.Record(ctx, fmt.Sprintf("contact add: %s", stored.Name)); err != nil {
					log.Println(errors.Wrap(err, "recording change"))
				}
				log.Printf("Added contact %d", stored.ID)
				refresh()
			},
		},
		{
			Hotkey: 'n',
			Short:  "add note",
			Func: func(ctx context.Context) {
				widget, opts, values := form.Form(form.FormOpts{
					Title: "New note",
					Fields: []form.Field{
						{Label: "Title"},
						{Label: "Content", Multiline: true},
						{Label: "Tags"},
					},
				})
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				vals := <-values
				if strings.TrimSpace(vals["Title"]) == "" {
					log.Println("A note needs a title.")
					return
				}
				stored, err := client.PutNote(ctx, note.New(strings.TrimSpace(vals["Title"]), vals["Content"], note.ParseTags(vals["Tags"])))
				if err != nil {
					log.Println(errors.Wrap(err, "storing note"))
					return
				}
				if err := rec.Record(ctx, fmt.Sprintf("note add: %s", stored.Title)); err != nil {
					log.Println(errors.Wrap(err, "recording change"))
				}
				log.Printf("Added note %d", stored.ID)
				refresh()
			},
		},
		{
			Hotkey: '/',
			Short:  "find",
			Func: func(ctx context.Context) {
				widget, opts, input := textinput.TextInput(textinput.TextInputOpts{Header: "Find contacts"})
				exitFunc := modalFn(widget, opts)
				term := strings.TrimSpace(<-input)
				exitFunc()
				records, err := client.Contacts(ctx, store.Query{Term: term})
				if err != nil {
					log.Println(errors.Wrap(err, "searching contacts"))
					return
				}
				log.Printf("Found %d contacts matching %q", len(records), term)
				show(records)
			},
		},
		{
			Hotkey: 'r',
			Short:  "refresh",
			Func:   func(ctx context.Context) { refresh() },
		},
		{
			Hotkey: 's',
			Short:  "snapshot",
			Func: func(ctx context.Context) {
				const createOption = "create new snapshot"
				options := []string{createOption}
				byOption := make(map[string]string)
				existing, err := snaps.Snapshots(ctx)
				if err != nil {
					log.Println(errors.Wrap(err, "listing snapshots"))
					return
				}
				for _, s := range existing {
					label := fmt.Sprintf("restore %s %s", s.ID[:8], s.Created.Format("2006-01-02 15:04"))
					if s.Label != "" {
						label += " " + s.Label
					}
					options = append(options, label)
					byOption[label] = s.ID
				}
				widget, opts, selected := choice.Choice("Snapshots", options)
				exitFunc := modalFn(widget, opts)
				defer exitFunc()
				picked := <-selected
				if picked == createOption {
					s, err := snaps.CreateSnapshot(ctx, "")
					if err != nil {
						log.Println(errors.Wrap(err, "creating snapshot"))
						return
					}
					log.Printf("Created snapshot %s (%d contacts, %d notes)", s.ID[:8], s.Contacts, s.Notes)
					return
				}
				s, err := snaps.RestoreSnapshot(ctx, byOption[picked])
				if err != nil {
					log.Println(errors.Wrap(err, "restoring snapshot"))
					return
				}
				if err := rec.Record(ctx, fmt.Sprintf("snapshot restore: %s", s.ID[:8])); err != nil {
					log.Println(errors.Wrap(err, "recording change"))
				}
				log.Printf("Restored snapshot %s", s.ID[:8])
				refresh()
			},
		},
		{
			Hotkey: 'a',
			Short:  "console",
			Func: func(ctx context.Context) {
				c := console.NewConsole(app, backend, console.ConsoleOpts{
					Welcome:     "How can I help you? Type help for a list of commands.",
					InputHeader: "Talk to attache",
				})
				modalExit := modalFn(c.Widget(), modal.ModalOpts{Margin: 10})
				go func() {
					<-c.Done()
					modalExit()
					refresh()
				}()
			},
		},
	}
}
