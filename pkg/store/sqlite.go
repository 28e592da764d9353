// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"

	"github.com/attache-dev/attache/pkg/book"
	"github.com/attache-dev/attache/pkg/note"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	birthday TEXT,
	street TEXT,
	city TEXT,
	postal_code TEXT,
	country TEXT,
	created TIMESTAMP
);
CREATE TABLE IF NOT EXISTS contact_phones (
	contact_id INTEGER NOT NULL REFERENCES contacts(id),
	phone TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS contact_emails (
	contact_id INTEGER NOT NULL REFERENCES contacts(id),
	email TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY,
	title TEXT,
	content TEXT,
	created TIMESTAMP
);
CREATE TABLE IF NOT EXISTS note_tags (
	note_id INTEGER NOT NULL REFERENCES notes(id),
	tag TEXT NOT NULL
);
`

// SQLiteClient writes records to a SQLite database. It serves as an export
// destination and implements Writer.
type SQLiteClient struct {
	db *sql.DB
}

var _ Writer = &SQLiteClient{}

// NewSQLiteClient opens (creating if needed) the database at path.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// A single connection keeps writes serialized and makes :memory: behave.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating tables")
	}
	return &SQLiteClient{db: db}, nil
}

func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

func (c *SQLiteClient) nextID(ctx context.Context, table string) (int, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT id FROM "+table+" ORDER BY id")
	if err != nil {
		return 0, errors.Wrapf(err, "listing %s ids", table)
	}
	defer rows.Close()
	used := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return 0, errors.Wrap(err, "scanning id")
		}
		used[id] = true
	}
	if err := rows.Err(); err != nil {
		return 0, errors.Wrap(err, "iterating ids")
	}
	id := 1
	for used[id] {
		id++
	}
	return id, nil
}

func (c *SQLiteClient) PutContact(ctx context.Context, r book.Record) (book.Record, error) {
	if r.ID == 0 {
		id, err := c.nextID(ctx, "contacts")
		if err != nil {
			return book.Record{}, err
		}
		r.ID = id
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return book.Record{}, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()
	var street, city, postalCode, country string
	if r.Address != nil {
		street, city, postalCode, country = r.Address.Street, r.Address.City, r.Address.PostalCode, r.Address.Country
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO contacts (id, name, birthday, street, city, postal_code, country, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, string(r.Name), string(r.Birthday), street, city, postalCode, country, r.Created); err != nil {
		return book.Record{}, errors.Wrap(err, "inserting contact")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM contact_phones WHERE contact_id = ?", r.ID); err != nil {
		return book.Record{}, errors.Wrap(err, "clearing phones")
	}
	for _, p := range r.Phones {
		if _, err := tx.ExecContext(ctx, "INSERT INTO contact_phones (contact_id, phone) VALUES (?, ?)", r.ID, string(p)); err != nil {
			return book.Record{}, errors.Wrap(err, "inserting phone")
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM contact_emails WHERE contact_id = ?", r.ID); err != nil {
		return book.Record{}, errors.Wrap(err, "clearing emails")
	}
	for _, e := range r.Emails {
		if _, err := tx.ExecContext(ctx, "INSERT INTO contact_emails (contact_id, email) VALUES (?, ?)", r.ID, string(e)); err != nil {
			return book.Record{}, errors.Wrap(err, "inserting email")
		}
	}
	if err := tx.Commit(); err != nil {
		return book.Record{}, errors.Wrap(err, "committing contact")
	}
	return r, nil
}

func (c *SQLiteClient) DeleteContact(ctx context.Context, id int) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()
	res, err := tx.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "deleting contact")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "counting deleted rows")
	} else if n == 0 {
		return errors.Errorf("no contact with ID %d", id)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM contact_phones WHERE contact_id = ?", id); err != nil {
		return errors.Wrap(err, "deleting phones")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM contact_emails WHERE contact_id = ?", id); err != nil {
		return errors.Wrap(err, "deleting emails")
	}
	return errors.Wrap(tx.Commit(), "committing delete")
}

func (c *SQLiteClient) PutNote(ctx context.Context, n note.Note) (note.Note, error) {
	if n.ID == 0 {
		id, err := c.nextID(ctx, "notes")
		if err != nil {
			return note.Note{}, err
		}
		n.ID = id
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return note.Note{}, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO notes (id, title, content, created) VALUES (?, ?, ?, ?)",
		n.ID, n.Title, n.Content, n.Created); err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", n.ID); err != nil {
		return note.Note{}, errors.Wrap(err, "clearing tags")
	}
	for _, t := range n.Tags {
		if _, err := tx.ExecContext(ctx, "INSERT INTO note_tags (note_id, tag) VALUES (?, ?)", n.ID, t); err != nil {
			return note.Note{}, errors.Wrap(err, "inserting tag")
		}
	}
	if err := tx.Commit(); err != nil {
		return note.Note{}, errors.Wrap(err, "committing note")
	}
	return n, nil
}

func (c *SQLiteClient) DeleteNote(ctx context.Context, id int) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()
	res, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return errors.Wrap(err, "deleting note")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "counting deleted rows")
	} else if n == 0 {
		return errors.Errorf("no note with ID %d", id)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM note_tags WHERE note_id = ?", id); err != nil {
		return errors.Wrap(err, "deleting tags")
	}
	return errors.Wrap(tx.Commit(), "committing delete")
}
