// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package paths

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// DefaultAcronyms are path segments kept verbatim when deriving namespaces.
var DefaultAcronyms = []string{"DTOs", "APIs", "URLs", "UUIDs"}

// Config holds the namespace and directory layout used by a Resolver.
type Config struct {
	// BaseNamespace is the namespace that maps to OutputDir.
	BaseNamespace string
	// OutputDir is the directory generated classes in BaseNamespace are written to.
	OutputDir string
	// ProjectRoot anchors foreign namespaces and path-to-namespace conversion.
	ProjectRoot string
	// Extension of generated files, including the dot. Defaults to ".php".
	Extension string
	// Aliases rewrite a root namespace segment to a directory name, e.g. App -> app.
	Aliases map[string]string
	// Acronyms are directory names preserved as namespace segments.
	Acronyms []string
}

// Resolver converts between namespaces and file paths.
type Resolver struct {
	cfg     Config
	reverse map[string]string
}

// New creates a Resolver, filling defaults for empty Config values.
func New(cfg Config) *Resolver {
	cfg.BaseNamespace = Normalize(Canonical(cfg.BaseNamespace))
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = "."
	}
	if cfg.Extension == "" {
		cfg.Extension = ".php"
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{"App": "app"}
	}
	if cfg.Acronyms == nil {
		cfg.Acronyms = DefaultAcronyms
	}
	r := &Resolver{cfg: cfg, reverse: make(map[string]string, len(cfg.Aliases))}
	for ns, dir := range cfg.Aliases {
		r.reverse[dir] = ns
	}
	return r
}

// Config returns the resolver configuration with defaults applied.
func (r *Resolver) Config() Config {
	return r.cfg
}

// OutputPath returns the file path for class in namespace ns.
//
// Namespaces equal to or under the base namespace land in the output directory.
// Any other namespace is converted as a whole and placed under the project root,
// with the root segment rewritten through Aliases.
func (r *Resolver) OutputPath(class, ns string) string {
	ns = Normalize(Canonical(ns))
	file := class + r.cfg.Extension
	base := r.cfg.BaseNamespace

	switch {
	case base != "" && ns == base:
		return filepath.Join(r.cfg.OutputDir, file)
	case IsSubNamespaceOf(ns, base):
		rel := strings.TrimPrefix(ns, base+Separator)
		return filepath.Join(r.cfg.OutputDir, toPath(rel), file)
	}

	segments := strings.Split(ns, Separator)
	if dir, ok := r.cfg.Aliases[segments[0]]; ok {
		segments[0] = dir
	}
	return filepath.Join(r.cfg.ProjectRoot, filepath.Join(segments...), file)
}

// NamespaceFromPath derives the namespace of a file from its directory.
func (r *Resolver) NamespaceFromPath(file string) (string, error) {
	return r.NamespaceFromDir(filepath.Dir(file))
}

// NamespaceFromDir derives a namespace from a directory below the project root.
// Segments are studly-cased unless all-caps or a known acronym; an aliased root
// directory maps back to its namespace segment.
func (r *Resolver) NamespaceFromDir(dir string) (string, error) {
	rel, err := filepath.Rel(r.cfg.ProjectRoot, dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s against project root: %w", dir, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "", fmt.Errorf("%s is the project root", dir)
	}
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside the project root %s", dir, r.cfg.ProjectRoot)
	}

	segments := strings.Split(rel, "/")
	for i, seg := range segments {
		if i == 0 {
			if ns, ok := r.reverse[seg]; ok {
				segments[i] = ns
				continue
			}
		}
		segments[i] = r.studly(seg)
	}
	return strings.Join(segments, Separator), nil
}

func (r *Resolver) studly(seg string) string {
	if isAllCaps(seg) {
		return seg
	}
	for _, a := range r.cfg.Acronyms {
		if strings.EqualFold(a, seg) {
			return a
		}
	}
	return inflect.Camelize(seg)
}

func isAllCaps(s string) bool {
	letters := false
	for _, c := range s {
		if unicode.IsLower(c) {
			return false
		}
		if unicode.IsLetter(c) {
			letters = true
		}
	}
	return letters
}

func toPath(ns string) string {
	return filepath.Join(strings.Split(ns, Separator)...)
}
