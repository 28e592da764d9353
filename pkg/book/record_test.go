// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package book

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustRecord(t *testing.T, name string) Record {
	t.Helper()
	n, err := NewName(name)
	if err != nil {
		t.Fatalf("NewName(%q) failed: %v", name, err)
	}
	return NewRecord(n)
}

func TestRecordPhones(t *testing.T) {
	r := mustRecord(t, "Jan Kowalski")
	r.AddPhone("123456789")
	r.AddPhone("987654321")
	if err := r.ReplacePhone("123456789", "111222333"); err != nil {
		t.Fatalf("ReplacePhone() error = %v", err)
	}
	if got, want := r.Phones, []Phone{"111222333", "987654321"}; !cmp.Equal(got, want) {
		t.Errorf("Phones diff: %v", cmp.Diff(got, want))
	}
	if err := r.RemovePhone("987654321"); err != nil {
		t.Fatalf("RemovePhone() error = %v", err)
	}
	if err := r.RemovePhone("987654321"); err == nil {
		t.Error("RemovePhone() expected error for absent phone")
	}
	if err := r.ReplacePhone("987654321", "000000000"); err == nil {
		t.Error("ReplacePhone() expected error for absent phone")
	}
}

func TestRecordEmails(t *testing.T) {
	r := mustRecord(t, "Jan Kowalski")
	r.AddEmail("jan@example.com")
	if err := r.ReplaceEmail("jan@example.com", "jan.k@example.com"); err != nil {
		t.Fatalf("ReplaceEmail() error = %v", err)
	}
	if err := r.RemoveEmail("jan@example.com"); err == nil {
		t.Error("RemoveEmail() expected error for absent email")
	}
	if err := r.RemoveEmail("jan.k@example.com"); err != nil {
		t.Errorf("RemoveEmail() error = %v", err)
	}
	if len(r.Emails) != 0 {
		t.Errorf("Emails = %v, want empty", r.Emails)
	}
}

func TestDaysUntilBirthday(t *testing.T) {
	tests := []struct {
		name     string
		birthday Birthday
		now      time.Time
		want     int
		wantErr  bool
	}{
		{
			name:     "same day",
			birthday: "1990-05-17",
			now:      time.Date(2025, 5, 17, 14, 30, 0, 0, time.UTC),
			want:     0,
		},
		{
			name:     "tomorrow",
			birthday: "1990-05-17",
			now:      time.Date(2025, 5, 16, 23, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "wraps to next year",
			birthday: "1990-01-01",
			now:      time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "feb 29 observed on feb 28",
			birthday: "2000-02-29",
			now:      time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "feb 29 in leap year",
			birthday: "2000-02-29",
			now:      time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:    "no birthday",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRecord(t, "Jan Kowalski")
			r.Birthday = tt.birthday
			got, err := r.DaysUntilBirthday(tt.now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysUntilBirthday() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("DaysUntilBirthday() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecordMatches(t *testing.T) {
	r := mustRecord(t, "Jan Kowalski")
	r.AddPhone("123456789")
	r.AddEmail("jan@example.com")
	tests := []struct {
		name string
		term string
		want bool
	}{
		{name: "name case-insensitive", term: "kowal", want: true},
		{name: "name exact", term: "Jan Kowalski", want: true},
		{name: "phone substring", term: "3456", want: true},
		{name: "email substring", term: "example.com", want: true},
		{name: "email is case-sensitive", term: "EXAMPLE.COM", want: false},
		{name: "no match", term: "nowak", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Matches(tt.term); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestRecordRoundTrip(t *testing.T) {
	r := Record{
		ID:       3,
		Name:     "Anna Nowak",
		Phones:   []Phone{"123456789"},
		Emails:   []Email{"anna@example.com"},
		Birthday: "1985-11-02",
		Address:  &Address{Street: "Polna 1", City: "Warszawa", PostalCode: "00-625", Country: "Poland"},
		Created:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	enc, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Record
	if err := json.Unmarshal(enc, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if want := r; !cmp.Equal(got, want) {
		t.Errorf("round trip diff: %v", cmp.Diff(got, want))
	}
}

func TestRecordString(t *testing.T) {
	r := Record{ID: 7, Name: "Jan Kowalski", Phones: []Phone{"123456789"}, Emails: []Email{"jan@example.com"}, Birthday: "1990-05-17"}
	want := "ID: 7, Name: Jan Kowalski, Phones: 123456789, Emails: jan@example.com, Birthday: 1990-05-17"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
