// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dacolabs/dtogen/internal/generate"
	"github.com/dacolabs/dtogen/internal/prompts"
	"github.com/dacolabs/dtogen/internal/schema"
)

// FormatError renders err as a user-facing diagnostic. Generation errors show the
// definition file, class, field and kind tag involved, followed by suggestions.
func FormatError(err error) string {
	ge, ok := generate.AsError(err)
	if !ok {
		return prompts.Failure("✗ ") + err.Error()
	}

	var b strings.Builder
	b.WriteString(prompts.Failure("✗ " + string(ge.Kind)))
	b.WriteByte('\n')

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s %s\n", prompts.Label(fmt.Sprintf("%-7s", label+":")), value)
		}
	}
	row("File", ge.Source)
	row("DTO", ge.Class)
	field := ge.Field
	if field != "" && ge.KindTag != "" {
		field += fmt.Sprintf(" (type %q)", ge.KindTag)
	}
	row("Field", field)
	row("Path", ge.Path)
	row("Error", detail(ge))

	if hints := ge.Suggestions(); len(hints) > 0 {
		b.WriteString(prompts.Label("  Suggestions:"))
		b.WriteByte('\n')
		for _, h := range hints {
			fmt.Fprintf(&b, "    - %s\n", h)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func detail(ge *generate.Error) string {
	msg := ge.Message
	if ge.Cause != nil {
		if msg != "" {
			msg += ": "
		}
		msg += ge.Cause.Error()
	}
	if msg == "" {
		return ge.Error()
	}
	return msg
}

// withSource attaches the definition file to a generation error that lacks one.
func withSource(err error, file string) error {
	if ge, ok := generate.AsError(err); ok && ge.Source == "" {
		ge.Source = file
	}
	return err
}

// errorReport is the JSON form of an error.
type errorReport struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Field       string   `json:"field,omitempty"`
	Type        string   `json:"type,omitempty"`
	Path        string   `json:"path,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func newErrorReport(err error) *errorReport {
	if ge, ok := generate.AsError(err); ok {
		return &errorReport{
			Kind:        string(ge.Kind),
			Message:     ge.Error(),
			Field:       ge.Field,
			Type:        ge.KindTag,
			Path:        ge.Path,
			Suggestions: ge.Suggestions(),
		}
	}

	kind := "Error"
	var pe *schema.ParseError
	if errors.As(err, &pe) {
		kind = "ParseError"
	}
	return &errorReport{Kind: kind, Message: err.Error()}
}
