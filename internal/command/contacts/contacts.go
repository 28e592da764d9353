// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package contacts implements the address book commands.
package contacts

import (
	"context"
	"strings"

	"github.com/attache-dev/attache/pkg/act/cli"
	"github.com/attache-dev/attache/pkg/book"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
)

// Deps holds dependencies for the contacts commands.
type Deps struct {
	IO cli.IO
}

func (d *Deps) SetIO(cio cli.IO) { d.IO = cio }

// InitDeps initializes Deps.
func InitDeps(context.Context) (*Deps, error) {
	return &Deps{}, nil
}

// Command creates the contacts command tree.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage the address book",
	}
	cmd.AddCommand(addCommand(), listCommand(), showCommand(), findCommand(), editCommand(), rmCommand())
	return cmd
}

// splitList splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func parsePhones(s string) ([]book.Phone, error) {
	var phones []book.Phone
	for _, raw := range splitList(s) {
		p, err := book.NewPhone(raw)
		if err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, nil
}

func parseEmails(s string) ([]book.Email, error) {
	var emails []book.Email
	for _, raw := range splitList(s) {
		e, err := book.NewEmail(raw)
		if err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, nil
}

// mergeAddress overlays the non-empty address parts onto the record's
// address. All parts empty leaves the record untouched.
func mergeAddress(r *book.Record, street, city, postal, country string) {
	if street == "" && city == "" && postal == "" && country == "" {
		return
	}
	var a book.Address
	if r.Address != nil {
		a = *r.Address
	}
	if street != "" {
		a.Street = street
	}
	if city != "" {
		a.City = city
	}
	if postal != "" {
		a.PostalCode = postal
	}
	if country != "" {
		a.Country = country
	}
	r.SetAddress(a)
}
