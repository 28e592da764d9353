// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr bool
	}{
		{
			name:    "empty file keeps defaults",
			content: "",
			want:    Config{PageSize: 5},
		},
		{
			name:    "page size override",
			content: "page_size: 10\n",
			want:    Config{PageSize: 10},
		},
		{
			name:    "zero page size falls back to default",
			content: "page_size: 0\n",
			want:    Config{PageSize: 5},
		},
		{
			name:    "data dir override",
			content: "data_dir: /srv/attache\n",
			want:    Config{DataDir: "/srv/attache", PageSize: 5},
		},
		{
			name:    "malformed yaml",
			content: "page_size: [\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile() = %v", err)
			}
			got, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestHistoryEnabled(t *testing.T) {
	enabled := true
	disabled := false
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "unset defaults to true", cfg: Config{}, want: true},
		{name: "explicit true", cfg: Config{History: HistoryConfig{Enabled: &enabled}}, want: true},
		{name: "explicit false", cfg: Config{History: HistoryConfig{Enabled: &disabled}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HistoryEnabled(); got != tt.want {
				t.Errorf("HistoryEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv("ATTACHE_CONFIG", "")
	t.Setenv("ATTACHE_HOME", "/data/attache")
	{
		got, err := Path("/etc/attache.yaml")
		if err != nil {
			t.Fatalf("Path() = %v", err)
		}
		if want := "/etc/attache.yaml"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	}
	{
		t.Setenv("ATTACHE_CONFIG", "/tmp/override.yaml")
		got, err := Path("")
		if err != nil {
			t.Fatalf("Path() = %v", err)
		}
		if want := "/tmp/override.yaml"; got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
		t.Setenv("ATTACHE_CONFIG", "")
	}
	{
		got, err := Path("")
		if err != nil {
			t.Fatalf("Path() = %v", err)
		}
		if want := filepath.Join("/data/attache", "config.yaml"); got != want {
			t.Errorf("Path() = %q, want %q", got, want)
		}
	}
}
