// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package book

import (
	"testing"
)

func TestNewPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "nine digits", input: "123456789"},
		{name: "too short", input: "12345678", wantErr: true},
		{name: "too long", input: "1234567890", wantErr: true},
		{name: "letters", input: "12345678a", wantErr: true},
		{name: "internal space", input: "123 45678", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "plus prefix", input: "+48123456", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPhone(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewPhone(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && string(got) != tt.input {
				t.Errorf("NewPhone(%q) = %q", tt.input, got)
			}
		})
	}
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple", input: "ala@example.com"},
		{name: "plus and dots", input: "a.b+c_d@sub-domain.example.co"},
		{name: "no at", input: "example.com", wantErr: true},
		{name: "no domain dot", input: "ala@example", wantErr: true},
		{name: "space in local part", input: "a la@example.com", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEmail(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("NewEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNewBirthday(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "1990-05-17"},
		{name: "leap day", input: "2000-02-29"},
		{name: "non-leap feb 29", input: "2001-02-29", wantErr: true},
		{name: "wrong order", input: "17-05-1990", wantErr: true},
		{name: "month out of range", input: "1990-13-01", wantErr: true},
		{name: "not a date", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBirthday(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("NewBirthday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNewName(t *testing.T) {
	if _, err := NewName("Jan Kowalski"); err != nil {
		t.Errorf("NewName() error = %v", err)
	}
	if _, err := NewName("   "); err == nil {
		t.Error("NewName() expected error for blank name")
	}
}

func TestAddressString(t *testing.T) {
	a := Address{Street: "Main St 7", City: "Springfield", PostalCode: "00-001", Country: "USA"}
	if got, want := a.String(), "Main St 7, Springfield, 00-001, USA"; got != want {
		t.Errorf("Address.String() = %q, want %q", got, want)
	}
	partial := Address{City: "Springfield", Country: "USA"}
	if got, want := partial.String(), "Springfield, USA"; got != want {
		t.Errorf("Address.String() = %q, want %q", got, want)
	}
}
