// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDefinition indicates the definition could not be parsed.
	ErrInvalidDefinition = errors.New("invalid DTO definition")

	// ErrUnsupportedFormat indicates a definition file with an unknown extension.
	ErrUnsupportedFormat = errors.New("format not supported")
)

// ParseError reports a malformed definition document.
type ParseError struct {
	Source string
	Line   int
	Msg    string
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse")
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidDefinition.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// Parse decodes a definition from r. JSON documents are accepted since JSON is a subset of YAML.
// source identifies the document in errors (usually its file path).
func Parse(r io.Reader, source string) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Source: source, Msg: "read failed", Err: err}
	}
	return ParseBytes(data, source)
}

// ParseBytes decodes a definition from raw YAML or JSON.
// Field, relation and option order follows the document.
func ParseBytes(data []byte, source string) (*Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Source: source, Msg: "malformed document", Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, &ParseError{Source: source, Msg: "empty definition"}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Source: source, Line: root.Line, Msg: "top level must be a mapping"}
	}

	def := &Definition{Source: source}
	p := &parser{source: source}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		var err error
		switch key.Value {
		case "header":
			err = p.header(val, &def.Header)
		case "fields":
			def.Fields, err = p.fields(val)
		case "relations":
			def.Relations, err = p.relations(val)
		case "options":
			def.Options, err = p.options(val)
		}
		if err != nil {
			return nil, err
		}
	}
	return def, nil
}

type parser struct {
	source string
}

func (p *parser) errorf(n *yaml.Node, err error, format string, args ...any) error {
	return &ParseError{Source: p.source, Line: n.Line, Msg: fmt.Sprintf(format, args...), Err: err}
}

type rawHeader struct {
	DTO       string     `yaml:"dto"`
	Class     string     `yaml:"class"`
	Model     string     `yaml:"model"`
	Table     string     `yaml:"table"`
	Namespace string     `yaml:"namespace"`
	Extends   string     `yaml:"extends"`
	Use       stringList `yaml:"use"`
	Traits    stringList `yaml:"traits"`
}

func (p *parser) header(n *yaml.Node, h *Header) error {
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return p.errorf(n, nil, "header must be a mapping")
	}
	var raw rawHeader
	if err := n.Decode(&raw); err != nil {
		return p.errorf(n, err, "invalid header")
	}
	*h = Header{
		DTO:       strings.TrimSpace(raw.DTO),
		Model:     strings.TrimSpace(raw.Model),
		Table:     strings.TrimSpace(raw.Table),
		Namespace: strings.TrimSpace(raw.Namespace),
		Extends:   strings.TrimSpace(raw.Extends),
		Use:       raw.Use,
		Traits:    raw.Traits,
	}
	if h.DTO == "" {
		h.DTO = strings.TrimSpace(raw.Class)
	}
	return nil
}

type rawField struct {
	Type         string     `yaml:"type"`
	Required     *bool      `yaml:"required"`
	Nullable     *bool      `yaml:"nullable"`
	Default      any        `yaml:"default"`
	Validation   stringList `yaml:"validation"`
	Rules        stringList `yaml:"rules"`
	Class        string     `yaml:"class"`
	DTO          string     `yaml:"dto"`
	EnumClass    string     `yaml:"enum_class"`
	Values       stringList `yaml:"values"`
	Transformers stringList `yaml:"transformers"`
}

func (p *parser) fields(n *yaml.Node) ([]Field, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, nil, "fields must be a mapping")
	}

	seen := make(map[string]bool, len(n.Content)/2)
	fields := make([]Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		name := key.Value
		if seen[name] {
			return nil, p.errorf(key, nil, "duplicate field %q", name)
		}
		seen[name] = true

		f, err := p.field(name, val)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (p *parser) field(name string, n *yaml.Node) (Field, error) {
	f := Field{Name: name, Type: KindString, Required: true}

	switch {
	case isNull(n):
		return f, nil
	case n.Kind == yaml.ScalarNode:
		// shorthand: `name: string`
		f.Type = Kind(strings.TrimSpace(n.Value))
		return f, nil
	case n.Kind != yaml.MappingNode:
		return f, p.errorf(n, nil, "field %q must be a mapping", name)
	}

	var raw rawField
	if err := n.Decode(&raw); err != nil {
		return f, p.errorf(n, err, "invalid field %q", name)
	}

	if t := strings.TrimSpace(raw.Type); t != "" {
		f.Type = Kind(t)
	}
	if hasKey(n, "default") {
		f.HasDefault = true
		f.Default = raw.Default
	}
	switch {
	case raw.Required != nil:
		f.Required = *raw.Required
	case f.HasDefault:
		// a default without an explicit required flag makes the field optional
		f.Required = false
	}
	if raw.Nullable != nil && *raw.Nullable {
		f.Required = false
	}
	f.Validation = append(append([]string{}, raw.Validation...), raw.Rules...)
	if len(f.Validation) == 0 {
		f.Validation = nil
	}
	f.Class = firstNonEmpty(raw.Class, raw.DTO, raw.EnumClass)
	f.Values = raw.Values
	f.Transformers = raw.Transformers
	return f, nil
}

type rawRelation struct {
	Type   string `yaml:"type"`
	Target string `yaml:"target"`
	DTO    string `yaml:"dto"`
	Model  string `yaml:"model"`
}

func (p *parser) relations(n *yaml.Node) ([]Relation, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, nil, "relations must be a mapping")
	}

	relations := make([]Relation, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if val.Kind != yaml.MappingNode {
			return nil, p.errorf(val, nil, "relation %q must be a mapping", key.Value)
		}
		var raw rawRelation
		if err := val.Decode(&raw); err != nil {
			return nil, p.errorf(val, err, "invalid relation %q", key.Value)
		}
		relations = append(relations, Relation{
			Name:   key.Value,
			Type:   RelationKind(strings.TrimSpace(raw.Type)),
			Target: strings.TrimSpace(firstNonEmpty(raw.Target, raw.DTO, raw.Model)),
		})
	}
	return relations, nil
}

func (p *parser) options(n *yaml.Node) ([]Option, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, p.errorf(n, nil, "options must be a mapping")
	}

	options := make([]Option, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		var v any
		if err := val.Decode(&v); err != nil {
			return nil, p.errorf(val, err, "invalid option %q", key.Value)
		}
		options = append(options, Option{Name: key.Value, Value: v})
	}
	return options, nil
}

// stringList accepts either a single scalar or a sequence of scalars.
type stringList []string

func (l *stringList) UnmarshalYAML(n *yaml.Node) error {
	switch {
	case isNull(n):
		*l = nil
	case n.Kind == yaml.ScalarNode:
		*l = stringList{n.Value}
	case n.Kind == yaml.SequenceNode:
		var items []string
		if err := n.Decode(&items); err != nil {
			return err
		}
		*l = items
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", n.Line)
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func hasKey(n *yaml.Node, key string) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
