// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package output persists generated sources.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dacolabs/dtogen/internal/generate"
)

// Writer persists generated source at a path.
type Writer interface {
	Write(path, code string) error
}

// FileWriter writes sources to the local filesystem, creating parent directories.
type FileWriter struct {
	// Force overwrites existing files.
	Force bool
}

// Write writes code to path. An existing file is left untouched unless Force is set.
// All failures are reported as FileWriteError values carrying the path.
func (w FileWriter) Write(path, code string) error {
	if !w.Force {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return fileError(path, "file already exists (use --force to overwrite)", nil)
		case !errors.Is(err, fs.ErrNotExist):
			return fileError(path, "cannot inspect target", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fileError(path, "cannot create directory", err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil { //nolint:gosec // generated sources are world-readable
		return fileError(path, "write failed", err)
	}
	return nil
}

func fileError(path, msg string, cause error) *generate.Error {
	return &generate.Error{Kind: generate.FileWriteError, Path: path, Message: msg, Cause: cause}
}

// MemoryWriter collects sources in memory, keyed by path.
type MemoryWriter struct {
	Files map[string]string
}

// Write records code under path, failing on duplicates.
func (w *MemoryWriter) Write(path, code string) error {
	if w.Files == nil {
		w.Files = make(map[string]string)
	}
	if _, ok := w.Files[path]; ok {
		return fileError(path, fmt.Sprintf("%s written twice", filepath.Base(path)), nil)
	}
	w.Files[path] = code
	return nil
}
