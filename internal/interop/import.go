// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package interop

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Mapping relates contact fields to paths in a foreign document. Paths use
// gjson syntax and resolve relative to each row.
type Mapping struct {
	Name     string
	Phones   string
	Emails   string
	Birthday string
}

// DefaultMapping matches the bundle layout written by WriteBundle.
func DefaultMapping() Mapping {
	return Mapping{Name: "name", Phones: "phones", Emails: "emails", Birthday: "birthday"}
}

// ParseMapping overlays comma-separated field=path pairs onto the default
// mapping, e.g. "name=full_name,phones=tel".
func ParseMapping(s string) (Mapping, error) {
	m := DefaultMapping()
	if s == "" {
		return m, nil
	}
	for _, pair := range strings.Split(s, ",") {
		field, path, ok := strings.Cut(pair, "=")
		if !ok {
			return Mapping{}, errors.Errorf("malformed mapping %q: want field=path", pair)
		}
		switch field {
		case "name":
			m.Name = path
		case "phones":
			m.Phones = path
		case "emails":
			m.Emails = path
		case "birthday":
			m.Birthday = path
		default:
			return Mapping{}, errors.Errorf("unknown mapping field %q", field)
		}
	}
	return m, nil
}

// ReadForeign extracts contact records from a foreign JSON document. The root
// path addresses the array of rows, "" reads the document itself. Rows that
// fail validation are skipped and counted.
func ReadForeign(data []byte, root string, m Mapping) ([]book.Record, int, error) {
	var rows gjson.Result
	if root == "" {
		rows = gjson.ParseBytes(data)
	} else {
		rows = gjson.GetBytes(data, root)
	}
	if !rows.IsArray() {
		return nil, 0, errors.Errorf("path %q does not address an array of rows", root)
	}
	var records []book.Record
	var skipped int
	for _, row := range rows.Array() {
		b, err := normalize(row, m)
		if err != nil {
			return nil, 0, err
		}
		r, err := decodeContact(b)
		if err != nil {
			log.Printf("Skipping row: %v", err)
			skipped++
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

// normalize rewrites one foreign row into the canonical contact shape rather
// than decoding into intermediate structs.
func normalize(row gjson.Result, m Mapping) ([]byte, error) {
	out := []byte("{}")
	var err error
	if out, err = sjson.SetBytes(out, "name", row.Get(m.Name).String()); err != nil {
		return nil, errors.Wrap(err, "setting name")
	}
	for _, v := range valuesAt(row, m.Phones) {
		if out, err = sjson.SetBytes(out, "phones.-1", v); err != nil {
			return nil, errors.Wrap(err, "appending phone")
		}
	}
	for _, v := range valuesAt(row, m.Emails) {
		if out, err = sjson.SetBytes(out, "emails.-1", v); err != nil {
			return nil, errors.Wrap(err, "appending email")
		}
	}
	if b := row.Get(m.Birthday); b.Exists() && b.String() != "" {
		if out, err = sjson.SetBytes(out, "birthday", b.String()); err != nil {
			return nil, errors.Wrap(err, "setting birthday")
		}
	}
	return out, nil
}

// valuesAt returns the strings at path, accepting a single value or an array.
func valuesAt(row gjson.Result, path string) []string {
	v := row.Get(path)
	if !v.Exists() {
		return nil
	}
	if v.IsArray() {
		var out []string
		for _, e := range v.Array() {
			if s := e.String(); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	if s := v.String(); s != "" {
		return []string{s}
	}
	return nil
}

func decodeContact(b []byte) (book.Record, error) {
	var raw struct {
		Name     string   `json:"name"`
		Phones   []string `json:"phones"`
		Emails   []string `json:"emails"`
		Birthday string   `json:"birthday"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return book.Record{}, errors.Wrap(err, "decoding normalized row")
	}
	name, err := book.NewName(raw.Name)
	if err != nil {
		return book.Record{}, err
	}
	r := book.NewRecord(name)
	for _, p := range raw.Phones {
		phone, err := book.NewPhone(p)
		if err != nil {
			return book.Record{}, err
		}
		r.AddPhone(phone)
	}
	for _, e := range raw.Emails {
		email, err := book.NewEmail(e)
		if err != nil {
			return book.Record{}, err
		}
		r.AddEmail(email)
	}
	if raw.Birthday != "" {
		bday, err := book.NewBirthday(raw.Birthday)
		if err != nil {
			return book.Record{}, err
		}
		r.SetBirthday(bday)
	}
	return r, nil
}
