// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

package config

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
)

//go:embed rdfexplorer.yaml.default
var DefaultConfigYAML []byte

// DefaultConfigPath returns ~/.config/rdfexplorer/rdfexplorer.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rdfexplorer", "rdfexplorer.yaml"), nil
}

// WriteDefault writes the commented default config to path. An existing file
// is left alone unless force is set; the returned bool reports whether
// anything was written.
func WriteDefault(path string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "checking %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "creating config directory: %w", err)
	}
	if err := os.WriteFile(path, DefaultConfigYAML, 0o644); err != nil {
		return false, rdferr.Errorf(rdferr.CodeConfigLoadReadFailure, "writing config %s: %w", path, err)
	}
	return true, nil
}
