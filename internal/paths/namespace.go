// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package paths maps PHP namespaces to filesystem locations and back.
package paths

import (
	"regexp"
	"strings"
)

// Separator is the PHP namespace separator.
const Separator = `\`

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsIdentifier reports whether s is a valid PHP identifier.
func IsIdentifier(s string) bool {
	return identifier.MatchString(s)
}

// Canonical converts a dotted namespace to backslash form and trims surrounding space.
// "App.DTO.Admin" -> `App\DTO\Admin`.
func Canonical(ns string) string {
	return strings.ReplaceAll(strings.TrimSpace(ns), ".", Separator)
}

// Normalize trims space and leading or trailing separators.
func Normalize(ns string) string {
	return strings.Trim(strings.TrimSpace(ns), Separator)
}

// IsValidNamespace reports whether ns is non-empty, has no leading, trailing or doubled
// separators, and every segment is an identifier.
func IsValidNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for _, seg := range strings.Split(ns, Separator) {
		if !IsIdentifier(seg) {
			return false
		}
	}
	return true
}

// IsSubNamespaceOf reports whether ns is strictly contained in parent.
// A namespace is never its own sub-namespace.
func IsSubNamespaceOf(ns, parent string) bool {
	ns, parent = Normalize(ns), Normalize(parent)
	if ns == "" || parent == "" {
		return false
	}
	return strings.HasPrefix(ns, parent+Separator)
}

// Join joins namespace segments, skipping empty ones.
func Join(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = Normalize(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}
