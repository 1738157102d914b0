// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"github.com/dacolabs/dtogen/internal/schema"
)

// Emitter turns one named definition of a supported kind into a fragment.
// Emitters must not keep state between calls; per-run state lives in the Context.
type Emitter[K comparable, D, F any] interface {
	Supports(kind K) bool
	Generate(name string, def D, ctx *Context) (F, error)
}

// registry is an ordered emitter list with first-match-wins dispatch.
type registry[K comparable, D, F any] struct {
	emitters    []Emitter[K, D, F]
	unsupported ErrorKind // returned when no emitter supports a kind
	failure     ErrorKind // wraps unstructured emitter errors
}

// Register appends emitters. Emitters registered earlier take precedence.
func (r *registry[K, D, F]) Register(e ...Emitter[K, D, F]) {
	r.emitters = append(r.emitters, e...)
}

// Supports reports whether any registered emitter supports kind.
func (r *registry[K, D, F]) Supports(kind K) bool {
	return r.find(kind) != nil
}

// Len returns the number of registered emitters.
func (r *registry[K, D, F]) Len() int {
	return len(r.emitters)
}

func (r *registry[K, D, F]) find(kind K) Emitter[K, D, F] {
	for _, e := range r.emitters {
		if e.Supports(kind) {
			return e
		}
	}
	return nil
}

func (r *registry[K, D, F]) dispatch(name string, kind K, tag string, def D, ctx *Context) (F, error) {
	var zero F
	e := r.find(kind)
	if e == nil {
		return zero, (&Error{Kind: r.unsupported, Message: "no emitter registered"}).fill(name, tag, ctx)
	}
	frag, err := e.Generate(name, def, ctx)
	if err != nil {
		return zero, r.enrich(err, name, tag, ctx)
	}
	return frag, nil
}

// enrich fills missing context on structured errors and wraps anything else.
// A structured error is filled in place so any wrapping around it is kept.
func (r *registry[K, D, F]) enrich(err error, name, tag string, ctx *Context) error {
	if ge, ok := AsError(err); ok {
		ge.fill(name, tag, ctx)
		return err
	}
	return (&Error{Kind: r.failure, Cause: err}).fill(name, tag, ctx)
}

// FieldEmitter emits a constructor property for a field kind.
type FieldEmitter = Emitter[schema.Kind, schema.Field, Property]

// FieldRegistry dispatches fields by kind tag.
type FieldRegistry struct {
	registry[schema.Kind, schema.Field, Property]
}

// NewFieldRegistry creates an empty FieldRegistry.
func NewFieldRegistry(e ...FieldEmitter) *FieldRegistry {
	r := &FieldRegistry{registry[schema.Kind, schema.Field, Property]{
		unsupported: UnsupportedFieldType,
		failure:     InvalidField,
	}}
	r.Register(e...)
	return r
}

// Generate emits the property for field f.
func (r *FieldRegistry) Generate(f schema.Field, ctx *Context) (Property, error) {
	return r.dispatch(f.Name, f.Type, string(f.Type), f, ctx)
}

// RelationEmitter emits a relation property fragment.
type RelationEmitter = Emitter[schema.RelationKind, schema.Relation, string]

// RelationRegistry dispatches relations by relation type.
type RelationRegistry struct {
	registry[schema.RelationKind, schema.Relation, string]
}

// NewRelationRegistry creates an empty RelationRegistry.
func NewRelationRegistry(e ...RelationEmitter) *RelationRegistry {
	r := &RelationRegistry{registry[schema.RelationKind, schema.Relation, string]{
		unsupported: RelationGenerationFailure,
		failure:     RelationGenerationFailure,
	}}
	r.Register(e...)
	return r
}

// Generate emits the fragment for relation rel.
func (r *RelationRegistry) Generate(rel schema.Relation, ctx *Context) (string, error) {
	return r.dispatch(rel.Name, rel.Type, string(rel.Type), rel, ctx)
}

// ValidatorEmitter emits the validation rules for a field kind.
type ValidatorEmitter = Emitter[schema.Kind, schema.Field, []Rule]

// ValidatorRegistry dispatches validation rule generation by kind tag.
type ValidatorRegistry struct {
	registry[schema.Kind, schema.Field, []Rule]
}

// NewValidatorRegistry creates an empty ValidatorRegistry.
func NewValidatorRegistry(e ...ValidatorEmitter) *ValidatorRegistry {
	r := &ValidatorRegistry{registry[schema.Kind, schema.Field, []Rule]{
		unsupported: ValidationRuleFailure,
		failure:     ValidationRuleFailure,
	}}
	r.Register(e...)
	return r
}

// Generate emits the rules for field f.
func (r *ValidatorRegistry) Generate(f schema.Field, ctx *Context) ([]Rule, error) {
	return r.dispatch(f.Name, f.Type, string(f.Type), f, ctx)
}

// HeaderFragment is the output of a header directive.
type HeaderFragment struct {
	Imports []string
	Extends string
	Doc     []string
	Bundles []string // option bundles requested by behavior tags
}

// HeaderEmitter handles one header directive.
type HeaderEmitter = Emitter[string, schema.Header, HeaderFragment]

// HeaderRegistry dispatches header directives by key.
type HeaderRegistry struct {
	registry[string, schema.Header, HeaderFragment]
}

// NewHeaderRegistry creates an empty HeaderRegistry.
func NewHeaderRegistry(e ...HeaderEmitter) *HeaderRegistry {
	r := &HeaderRegistry{registry[string, schema.Header, HeaderFragment]{
		unsupported: UnsupportedHeader,
		failure:     InvalidHeader,
	}}
	r.Register(e...)
	return r
}

// Generate runs the emitter for directive key.
func (r *HeaderRegistry) Generate(key string, h schema.Header, ctx *Context) (HeaderFragment, error) {
	return r.dispatch(key, key, "", h, ctx)
}

// InjectedField is a synthetic field added by an option bundle.
// Override lets it replace a user field of the same name instead of conflicting.
type InjectedField struct {
	Field    schema.Field
	Override bool
}

// OptionEmitter emits extra methods for an option bundle.
type OptionEmitter = Emitter[string, schema.Option, []string]

// FieldExpander is implemented by option emitters that inject fields before field emission.
type FieldExpander interface {
	Expand(opt schema.Option, ctx *Context) ([]InjectedField, error)
}

// OptionRegistry dispatches options by normalized name.
type OptionRegistry struct {
	registry[string, schema.Option, []string]
}

// NewOptionRegistry creates an empty OptionRegistry.
func NewOptionRegistry(e ...OptionEmitter) *OptionRegistry {
	r := &OptionRegistry{registry[string, schema.Option, []string]{
		unsupported: UnsupportedOption,
		failure:     InvalidOption,
	}}
	r.Register(e...)
	return r
}

// Expand returns the fields injected by opt. Options without a FieldExpander inject nothing.
func (r *OptionRegistry) Expand(opt schema.Option, ctx *Context) ([]InjectedField, error) {
	e := r.find(opt.Name)
	if e == nil {
		return nil, (&Error{Kind: UnsupportedOption, Message: "no emitter registered"}).fill(opt.Name, "", ctx)
	}
	x, ok := e.(FieldExpander)
	if !ok {
		return nil, nil
	}
	fields, err := x.Expand(opt, ctx)
	if err != nil {
		return nil, r.enrich(err, opt.Name, "", ctx)
	}
	return fields, nil
}

// Generate emits the method fragments for opt.
func (r *OptionRegistry) Generate(opt schema.Option, ctx *Context) ([]string, error) {
	return r.dispatch(opt.Name, opt.Name, "", opt, ctx)
}

// kindSet implements Supports for emitters covering a fixed set of kinds.
type kindSet[K comparable] []K

func (s kindSet[K]) Supports(kind K) bool {
	for _, k := range s {
		if k == kind {
			return true
		}
	}
	return false
}
