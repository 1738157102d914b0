// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema provides the DTO definition model and its YAML/JSON parser.
package schema

// Kind is the closed-vocabulary tag identifying a field's abstract type.
type Kind string

// Field kind tags.
const (
	KindString     Kind = "string"
	KindText       Kind = "text"
	KindID         Kind = "id"
	KindUUID       Kind = "uuid"
	KindInteger    Kind = "integer"
	KindInt        Kind = "int"
	KindBigInt     Kind = "bigint"
	KindFloat      Kind = "float"
	KindDouble     Kind = "double"
	KindDecimal    Kind = "decimal"
	KindBoolean    Kind = "boolean"
	KindBool       Kind = "bool"
	KindArray      Kind = "array"
	KindJSON       Kind = "json"
	KindDate       Kind = "date"
	KindDateTime   Kind = "datetime"
	KindTime       Kind = "time"
	KindEnum       Kind = "enum"
	KindDTO        Kind = "dto"
	KindCollection Kind = "collection"
)

// Kinds returns every field kind tag in the closed set, in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindString, KindText, KindID, KindUUID,
		KindInteger, KindInt, KindBigInt,
		KindFloat, KindDouble, KindDecimal,
		KindBoolean, KindBool,
		KindArray, KindJSON,
		KindDate, KindDateTime, KindTime,
		KindEnum, KindDTO, KindCollection,
	}
}

// RelationKind identifies the cardinality of a relation.
type RelationKind string

// Relation kinds.
const (
	HasOne        RelationKind = "hasOne"
	HasMany       RelationKind = "hasMany"
	BelongsTo     RelationKind = "belongsTo"
	BelongsToMany RelationKind = "belongsToMany"
)

// Header directive keys, in the order they are processed.
const (
	DirectiveDTO     = "dto"
	DirectiveModel   = "model"
	DirectiveTable   = "table"
	DirectiveExtends = "extends"
	DirectiveUse     = "use"
	DirectiveTraits  = "traits"
)

// Header holds the class-level directives of a definition.
type Header struct {
	DTO       string   `json:"dto"`
	Model     string   `json:"model,omitempty"`
	Table     string   `json:"table,omitempty"`
	Namespace string   `json:"namespace,omitempty"`
	Extends   string   `json:"extends,omitempty"`
	Use       []string `json:"use,omitempty"`
	Traits    []string `json:"traits,omitempty"`
}

// Directives returns the keys of the directives set on h, in processing order.
// The namespace is not a directive: it is resolved by the generator itself.
func (h Header) Directives() []string {
	var keys []string
	if h.DTO != "" {
		keys = append(keys, DirectiveDTO)
	}
	if h.Model != "" {
		keys = append(keys, DirectiveModel)
	}
	if h.Table != "" {
		keys = append(keys, DirectiveTable)
	}
	if h.Extends != "" {
		keys = append(keys, DirectiveExtends)
	}
	if len(h.Use) > 0 {
		keys = append(keys, DirectiveUse)
	}
	if len(h.Traits) > 0 {
		keys = append(keys, DirectiveTraits)
	}
	return keys
}

// Field is a single field declaration.
type Field struct {
	Name         string   `json:"name"`
	Type         Kind     `json:"type"`
	Required     bool     `json:"required"`
	Default      any      `json:"default,omitempty"`
	HasDefault   bool     `json:"has_default,omitempty"` // distinguishes an explicit null default from none
	Validation   []string `json:"validation,omitempty"`
	Class        string   `json:"class,omitempty"` // nested DTO, collection element or enum class
	Values       []string `json:"values,omitempty"`
	Transformers []string `json:"transformers,omitempty"`
}

// Nullable reports whether the field accepts null.
func (f Field) Nullable() bool {
	return !f.Required
}

// Relation is a relation declaration.
type Relation struct {
	Name   string       `json:"name"`
	Type   RelationKind `json:"type"`
	Target string       `json:"target"`
}

// Option is a named option with its raw payload.
type Option struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Definition is one parsed DTO definition.
// Fields, relations and options keep their declaration order.
type Definition struct {
	Source    string     `json:"source,omitempty"`
	Header    Header     `json:"header"`
	Fields    []Field    `json:"fields"`
	Relations []Relation `json:"relations,omitempty"`
	Options   []Option   `json:"options,omitempty"`
}

// Field looks up a field by name.
func (d *Definition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in declaration order.
func (d *Definition) FieldNames() []string {
	names := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		names[i] = f.Name
	}
	return names
}
