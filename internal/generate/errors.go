// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a generation failure.
type ErrorKind string

// Error kinds.
const (
	UnsupportedFieldType      ErrorKind = "UnsupportedFieldType"
	InvalidField              ErrorKind = "InvalidField"
	MissingRequiredHeader     ErrorKind = "MissingRequiredHeader"
	InvalidNamespace          ErrorKind = "InvalidNamespace"
	RelationGenerationFailure ErrorKind = "RelationGenerationFailure"
	ValidationRuleFailure     ErrorKind = "ValidationRuleGenerationFailure"
	FileWriteError            ErrorKind = "FileWriteError"
	UnsupportedHeader         ErrorKind = "UnsupportedHeader"
	InvalidHeader             ErrorKind = "InvalidHeader"
	UnsupportedOption         ErrorKind = "UnsupportedOption"
	InvalidOption             ErrorKind = "InvalidOption"
	NamingConflict            ErrorKind = "NamingConflict"
)

// Sentinel errors, one per ErrorKind. Use errors.Is to test an error's kind.
var (
	ErrUnsupportedFieldType  = errors.New("unsupported field type")
	ErrInvalidField          = errors.New("invalid field")
	ErrMissingRequiredHeader = errors.New("missing required header")
	ErrInvalidNamespace      = errors.New("invalid namespace")
	ErrRelationGeneration    = errors.New("relation generation failed")
	ErrValidationRule        = errors.New("validation rule generation failed")
	ErrFileWrite             = errors.New("file write failed")
	ErrUnsupportedHeader     = errors.New("unsupported header directive")
	ErrInvalidHeader         = errors.New("invalid header directive")
	ErrUnsupportedOption     = errors.New("unsupported option")
	ErrInvalidOption         = errors.New("invalid option")
	ErrNamingConflict        = errors.New("naming conflict")
)

var sentinels = map[ErrorKind]error{
	UnsupportedFieldType:      ErrUnsupportedFieldType,
	InvalidField:              ErrInvalidField,
	MissingRequiredHeader:     ErrMissingRequiredHeader,
	InvalidNamespace:          ErrInvalidNamespace,
	RelationGenerationFailure: ErrRelationGeneration,
	ValidationRuleFailure:     ErrValidationRule,
	FileWriteError:            ErrFileWrite,
	UnsupportedHeader:         ErrUnsupportedHeader,
	InvalidHeader:             ErrInvalidHeader,
	UnsupportedOption:         ErrUnsupportedOption,
	InvalidOption:             ErrInvalidOption,
	NamingConflict:            ErrNamingConflict,
}

var suggestions = map[ErrorKind][]string{
	UnsupportedFieldType: {
		"Check the field type spelling",
		"Supported types: string, text, id, uuid, integer, int, bigint, float, double, decimal, boolean, bool, array, json, date, datetime, time, enum, dto, collection",
	},
	InvalidField: {
		"A required field cannot declare a default; set required: false or remove the default",
		"Check that the default value matches the field type",
	},
	MissingRequiredHeader: {
		"Add a 'dto' entry to the header, e.g. header: { dto: UserDTO }",
	},
	InvalidNamespace: {
		`Namespaces are identifier segments separated by '\' or '.', e.g. App\DTO\Admin`,
	},
	RelationGenerationFailure: {
		"Relation types: hasOne, hasMany, belongsTo, belongsToMany",
		"Every relation needs a target class",
	},
	ValidationRuleFailure: {
		"Check the validation rules declared on the field",
	},
	FileWriteError: {
		"Check that the output directory is writable",
		"Use --force to overwrite an existing file",
	},
	UnsupportedHeader: {
		"Header directives: dto, model, table, namespace, extends, use, traits",
	},
	InvalidHeader: {
		"Check the header directive value",
	},
	UnsupportedOption: {
		"Options: timestamps, soft_deletes, uuid, versioning, taggable, auditable, sluggable, immutable, cacheable",
	},
	InvalidOption: {
		"Check the option payload",
	},
	NamingConflict: {
		"Rename the field, or remove the option that injects the same field",
	},
}

// Error is a structured generation error.
// Every error surfaced by the Generator carries as much of this context as is known.
type Error struct {
	Kind    ErrorKind
	Source  string // definition source, usually a file path
	Field   string // field, relation, directive or option name
	KindTag string // offending kind tag
	Class   string // target class name
	Path    string // output path, for FileWriteError
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if s, ok := sentinels[e.Kind]; ok {
		b.WriteString(s.Error())
	} else {
		b.WriteString("generation failed")
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	if e.KindTag != "" {
		fmt.Fprintf(&b, " (type %q)", e.KindTag)
	}
	if e.Class != "" {
		b.WriteString(" in ")
		b.WriteString(e.Class)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, " [%s]", e.Source)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " (path: %s)", e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Kind]
	return ok && target == s
}

// Suggestions returns short hints for resolving the error.
func (e *Error) Suggestions() []string {
	return suggestions[e.Kind]
}

// Errorf creates an Error of the given kind for the named field.
// Emitters return these; registries fill in the missing context.
func Errorf(kind ErrorKind, field string, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// fill sets context fields that are still empty. Populated fields are never overwritten.
func (e *Error) fill(field, tag string, c *Context) *Error {
	if e.Field == "" {
		e.Field = field
	}
	if e.KindTag == "" {
		e.KindTag = tag
	}
	if c != nil {
		if e.Source == "" {
			e.Source = c.Source
		}
		if e.Class == "" {
			e.Class = c.Class
		}
	}
	return e
}

// AsError returns the first *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err's chain contains an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	e, ok := AsError(err)
	return ok && e.Kind == kind
}
