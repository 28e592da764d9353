// Copyright 2025 The Attache Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the attache configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/attache-dev/attache/internal/localfiles"
	"github.com/attache-dev/attache/pkg/layout"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPageSize is the number of records shown per listing page.
const DefaultPageSize = 5

// Config is the on-disk configuration.
type Config struct {
	// DataDir overrides the default data home.
	DataDir string `yaml:"data_dir,omitempty"`
	// PageSize is the number of records shown per page in listings.
	PageSize int           `yaml:"page_size,omitempty"`
	History  HistoryConfig `yaml:"history,omitempty"`
}

// HistoryConfig controls the change journal.
type HistoryConfig struct {
	// Enabled defaults to true when unset.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{PageSize: DefaultPageSize}
}

// HistoryEnabled reports whether mutations should be journaled.
func (c Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// ResolveDataDir returns the configured data directory, falling back to the
// data home.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return localfiles.DataHome()
}

// Path resolves the config file location: the flag value when non-empty, else
// $ATTACHE_CONFIG, else config.yaml in the data home.
func Path(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if p := os.Getenv("ATTACHE_CONFIG"); p != "" {
		return p, nil
	}
	dataHome, err := localfiles.DataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataHome, layout.ConfigFile), nil
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parsing config %s", path)
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return cfg, nil
}
