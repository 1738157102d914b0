// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Loader loads definitions from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// IsDefinitionFile reports whether name has a definition file extension.
func IsDefinitionFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// LoadFile loads and parses a definition file.
// The file path is used as the definition source identifier.
func (l *Loader) LoadFile(filePath string) (*Definition, error) {
	if !IsDefinitionFile(filePath) {
		return nil, fmt.Errorf("%s: %w", filePath, ErrUnsupportedFormat)
	}

	data, err := fs.ReadFile(l.fsys, filePath)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data, filePath)
}

// List returns the definition files below dir, sorted by path.
func (l *Loader) List(dir string) ([]string, error) {
	var files []string
	err := fs.WalkDir(l.fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsDefinitionFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
