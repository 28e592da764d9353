// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package book defines the contact records managed by attache.
package book

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// BirthdayFormat is the wire format for birthday values.
const BirthdayFormat = "2006-01-02"

var (
	phoneRE = regexp.MustCompile(`^\d{9}$`)
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// Name is a contact's display name.
type Name string

// NewName validates and returns a Name.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.New("empty name")
	}
	return Name(s), nil
}

// Phone is a nine-digit phone number.
type Phone string

// NewPhone validates and returns a Phone.
func NewPhone(s string) (Phone, error) {
	if !phoneRE.MatchString(s) {
		return "", errors.Errorf("invalid phone number %q: want nine digits", s)
	}
	return Phone(s), nil
}

// Email is an email address.
type Email string

// NewEmail validates and returns an Email.
func NewEmail(s string) (Email, error) {
	if !emailRE.MatchString(s) {
		return "", errors.Errorf("invalid email address %q", s)
	}
	return Email(s), nil
}

// Birthday is a calendar date stored in BirthdayFormat.
type Birthday string

// NewBirthday validates and returns a Birthday.
func NewBirthday(s string) (Birthday, error) {
	if _, err := time.Parse(BirthdayFormat, s); err != nil {
		return "", errors.Wrapf(err, "invalid birthday %q", s)
	}
	return Birthday(s), nil
}

// Time returns the birthday as a time.Time.
func (b Birthday) Time() (time.Time, error) {
	t, err := time.Parse(BirthdayFormat, string(b))
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing birthday %q", string(b))
	}
	return t, nil
}

// Address is a contact's postal address.
type Address struct {
	Street     string `json:"street,omitempty" yaml:"street,omitempty"`
	City       string `json:"city,omitempty" yaml:"city,omitempty"`
	PostalCode string `json:"postal_code,omitempty" yaml:"postal_code,omitempty"`
	Country    string `json:"country,omitempty" yaml:"country,omitempty"`
}

func (a Address) String() string {
	var parts []string
	for _, p := range []string{a.Street, a.City, a.PostalCode, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
