// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package book

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Record is a single address book entry.
// An ID of zero means the record has not been stored yet.
type Record struct {
	ID       int       `json:"id" yaml:"id"`
	Name     Name      `json:"name" yaml:"name"`
	Phones   []Phone   `json:"phones,omitempty" yaml:"phones,omitempty"`
	Emails   []Email   `json:"emails,omitempty" yaml:"emails,omitempty"`
	Birthday Birthday  `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	Address  *Address  `json:"address,omitempty" yaml:"address,omitempty"`
	Created  time.Time `json:"created" yaml:"created"`
}

// NewRecord creates an unstored Record with the given name.
func NewRecord(name Name) Record {
	return Record{Name: name, Created: time.Now().UTC()}
}

func (r *Record) AddPhone(p Phone) {
	r.Phones = append(r.Phones, p)
}

func (r *Record) RemovePhone(p Phone) error {
	i := slices.Index(r.Phones, p)
	if i == -1 {
		return errors.Errorf("no phone %q on record", string(p))
	}
	r.Phones = slices.Delete(r.Phones, i, i+1)
	return nil
}

func (r *Record) ReplacePhone(old, new Phone) error {
	i := slices.Index(r.Phones, old)
	if i == -1 {
		return errors.Errorf("no phone %q on record", string(old))
	}
	r.Phones[i] = new
	return nil
}

func (r *Record) AddEmail(e Email) {
	r.Emails = append(r.Emails, e)
}

func (r *Record) RemoveEmail(e Email) error {
	i := slices.Index(r.Emails, e)
	if i == -1 {
		return errors.Errorf("no email %q on record", string(e))
	}
	r.Emails = slices.Delete(r.Emails, i, i+1)
	return nil
}

func (r *Record) ReplaceEmail(old, new Email) error {
	i := slices.Index(r.Emails, old)
	if i == -1 {
		return errors.Errorf("no email %q on record", string(old))
	}
	r.Emails[i] = new
	return nil
}

func (r *Record) Rename(n Name) {
	r.Name = n
}

func (r *Record) SetBirthday(b Birthday) {
	r.Birthday = b
}

func (r *Record) SetAddress(a Address) {
	r.Address = &a
}

// DaysUntilBirthday returns the number of days from now to the next occurrence
// of the birthday, zero on the day itself. Feb 29 birthdays are observed on
// Feb 28 in non-leap years.
func (r Record) DaysUntilBirthday(now time.Time) (int, error) {
	if r.Birthday == "" {
		return 0, errors.New("no birthday set")
	}
	bday, err := r.Birthday.Time()
	if err != nil {
		return 0, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := observedBirthday(bday, today.Year())
	if next.Before(today) {
		next = observedBirthday(bday, today.Year()+1)
	}
	return int(next.Sub(today) / (24 * time.Hour)), nil
}

func observedBirthday(bday time.Time, year int) time.Time {
	day := bday.Day()
	if bday.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, bday.Month(), day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Matches reports whether the record matches a search term: case-insensitive
// substring on the name, raw substring on any phone or email.
func (r Record) Matches(term string) bool {
	if strings.Contains(strings.ToLower(string(r.Name)), strings.ToLower(term)) {
		return true
	}
	for _, p := range r.Phones {
		if strings.Contains(string(p), term) {
			return true
		}
	}
	for _, e := range r.Emails {
		if strings.Contains(string(e), term) {
			return true
		}
	}
	return false
}

func (r Record) String() string {
	phones := make([]string, 0, len(r.Phones))
	for _, p := range r.Phones {
		phones = append(phones, string(p))
	}
	emails := make([]string, 0, len(r.Emails))
	for _, e := range r.Emails {
		emails = append(emails, string(e))
	}
	s := fmt.Sprintf("ID: %d, Name: %s, Phones: %s, Emails: %s", r.ID, r.Name, strings.Join(phones, ", "), strings.Join(emails, ", "))
	if r.Birthday != "" {
		s += fmt.Sprintf(", Birthday: %s", r.Birthday)
	}
	if r.Address != nil {
		s += fmt.Sprintf("\nAddress: %s", r.Address)
	}
	return s
}
