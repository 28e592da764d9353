// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package base wires the shared runtime of the attache commands: resolved
// configuration, the data home filesystem, the record store, and the change
// journal.
package base

import (
	"github.com/attache-dev/attache/internal/config"
	"github.com/attache-dev/attache/internal/history"
	"github.com/attache-dev/attache/internal/localfiles"
	"github.com/attache-dev/attache/pkg/store"
	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"
)

type Env struct {
	Config   config.Config
	DataDir  string
	FS       billy.Filesystem
	Client   *store.FilesystemClient
	Recorder history.Recorder
}

// OpenEnv loads the configuration addressed by configFlag and opens the data
// home it points at, creating the directory on first use.
func OpenEnv(configFlag string) (*Env, error) {
	path, err := config.Path(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}
	bfs, err := localfiles.DataFS(dataDir)
	if err != nil {
		return nil, err
	}
	env := &Env{
		Config:  cfg,
		DataDir: dataDir,
		FS:      bfs,
		Client:  store.NewFilesystemClient(bfs),
	}
	if cfg.HistoryEnabled() {
		rec, err := history.OpenDir(dataDir)
		if err != nil {
			return nil, errors.Wrap(err, "opening the change journal")
		}
		env.Recorder = rec
	} else {
		env.Recorder = history.NopRecorder{}
	}
	return env, nil
}
