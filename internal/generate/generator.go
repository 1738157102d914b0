// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package generate turns DTO definitions into PHP source.
//
// A Generator drives five registries in a fixed order: header directives, option
// bundles (which may inject fields), fields, relations, validators and finally option
// methods. The result is an Artifact that Render assembles into a single class.
package generate

import (
	"slices"
	"strings"

	"github.com/dacolabs/dtogen/internal/paths"
	"github.com/dacolabs/dtogen/internal/schema"
)

// Defaults applied by New for empty Config values.
const (
	DefaultNamespace = `App\DTO`
	DefaultModel     = `App\Models\Model`
	DefaultMaxDepth  = 3
)

// Transformers lists the field transformer names understood by the runtime registry.
var Transformers = []string{"trim", "lowercase", "uppercase", "title", "slug", "hash"}

// Config configures a Generator.
type Config struct {
	// BaseNamespace is used for definitions that declare no namespace.
	BaseNamespace string
	// DefaultModel is the model class used when the header declares none.
	DefaultModel string
	// MaxDepth bounds nested DTO typing; deeper references fall back to arrays.
	MaxDepth int
	// Types resolves kind tags. Defaults to PHPResolver.
	Types TypeResolver
}

// Generator turns definitions into artifacts. It holds no per-run state and is safe
// for concurrent use once its registries are no longer being modified.
type Generator struct {
	cfg Config

	Headers    *HeaderRegistry
	Fields     *FieldRegistry
	Relations  *RelationRegistry
	Validators *ValidatorRegistry
	Options    *OptionRegistry
}

// New creates a Generator with the built-in registries.
func New(cfg Config) *Generator {
	if cfg.BaseNamespace == "" {
		cfg.BaseNamespace = DefaultNamespace
	}
	cfg.BaseNamespace = paths.Canonical(cfg.BaseNamespace)
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Types == nil {
		cfg.Types = PHPResolver{}
	}
	return &Generator{
		cfg:        cfg,
		Headers:    DefaultHeaderRegistry(),
		Fields:     DefaultFieldRegistry(),
		Relations:  DefaultRelationRegistry(),
		Validators: DefaultValidatorRegistry(),
		Options:    DefaultOptionRegistry(),
	}
}

// Generate builds and renders the source for def.
func (g *Generator) Generate(def *schema.Definition) (string, error) {
	a, err := g.Build(def)
	if err != nil {
		return "", err
	}
	return Render(a)
}

// Namespace returns the namespace def will be generated into.
func (g *Generator) Namespace(def *schema.Definition) string {
	if def.Header.Namespace == "" {
		return g.cfg.BaseNamespace
	}
	return paths.Canonical(def.Header.Namespace)
}

// Build runs every registry over def and returns the assembled artifact.
// The first failure aborts the run.
func (g *Generator) Build(def *schema.Definition) (*Artifact, error) {
	class := def.Header.DTO
	if class == "" {
		return nil, &Error{
			Kind:    MissingRequiredHeader,
			Source:  def.Source,
			Field:   schema.DirectiveDTO,
			Message: "header must declare the dto class name",
		}
	}

	ns := g.Namespace(def)
	if !paths.IsValidNamespace(ns) {
		return nil, &Error{
			Kind:    InvalidNamespace,
			Source:  def.Source,
			Field:   "namespace",
			Class:   class,
			Message: "namespace " + quote(ns) + " is not valid",
		}
	}

	ctx := newContext(def, class, ns, g.cfg.Types, g.cfg.MaxDepth)
	a := &Artifact{Namespace: ns, ClassName: class, Source: def.Source}

	var bundles []string
	for _, key := range def.Header.Directives() {
		frag, err := g.Headers.Generate(key, def.Header, ctx)
		if err != nil {
			return nil, err
		}
		for _, imp := range frag.Imports {
			if !ctx.Imports.Add(imp) {
				other, _ := ctx.Imports.Lookup(shortName(imp))
				return nil, Errorf(InvalidHeader, key, "imports %q and %q share the name %s", other, imp, shortName(imp)).fill("", "", ctx)
			}
		}
		if frag.Extends != "" {
			a.BaseClass = frag.Extends
		}
		a.Doc = append(a.Doc, frag.Doc...)
		bundles = append(bundles, frag.Bundles...)
	}

	model := g.cfg.DefaultModel
	if def.Header.Model != "" {
		model = paths.Canonical(def.Header.Model)
	}
	if ctx.Imports.Has(model) {
		a.Model = shortName(model)
	} else {
		a.Model = `\` + strings.TrimLeft(model, `\`)
	}

	options := mergeOptions(def.Options, bundles)
	fields, err := g.expand(def.Fields, options, ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range fields {
		if err := checkField(f, ctx); err != nil {
			return nil, err
		}
	}

	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		p, err := g.Fields.Generate(f, ctx)
		if err != nil {
			return nil, err
		}
		p.Transformers = f.Transformers
		p.FromArray = transform(p)
		a.Properties = append(a.Properties, p)
		names[f.Name] = true
	}

	for _, rel := range def.Relations {
		if !paths.IsIdentifier(rel.Name) {
			return nil, (&Error{Kind: RelationGenerationFailure, Message: "relation name is not a valid identifier"}).fill(rel.Name, string(rel.Type), ctx)
		}
		if names[rel.Name] {
			return nil, (&Error{Kind: NamingConflict, Message: "relation has the same name as a field"}).fill(rel.Name, string(rel.Type), ctx)
		}
		frag, err := g.Relations.Generate(rel, ctx)
		if err != nil {
			return nil, err
		}
		a.Relations = append(a.Relations, frag)
		names[rel.Name] = true
	}

	for _, f := range fields {
		rules, err := g.Validators.Generate(f, ctx)
		if err != nil {
			return nil, err
		}
		if len(rules) > 0 {
			a.Rules = append(a.Rules, RuleSet{Field: f.Name, Rules: rules})
		}
	}

	for _, opt := range options {
		methods, err := g.Options.Generate(opt, ctx)
		if err != nil {
			return nil, err
		}
		a.Methods = append(a.Methods, methods...)
	}

	a.Imports = *ctx.Imports
	return a, nil
}

// mergeOptions normalizes option names and adds bundles requested by behavior tags.
// A bundle named by both an option and a tag is kept once, with the option's payload.
func mergeOptions(opts []schema.Option, bundles []string) []schema.Option {
	out := make([]schema.Option, 0, len(opts)+len(bundles))
	seen := make(map[string]bool, len(opts)+len(bundles))
	for _, o := range opts {
		name := NormalizeOption(o.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, schema.Option{Name: name, Value: o.Value})
	}
	for _, b := range bundles {
		if seen[b] {
			continue
		}
		seen[b] = true
		out = append(out, schema.Option{Name: b, Value: true})
	}
	return out
}

// expand merges fields injected by option bundles into the declared fields.
// Injected fields are appended in bundle order; an Override field replaces a declared
// field in place. Any other name collision is a NamingConflict.
func (g *Generator) expand(fields []schema.Field, options []schema.Option, ctx *Context) ([]schema.Field, error) {
	out := slices.Clone(fields)
	index := make(map[string]int, len(out))
	for i, f := range out {
		index[f.Name] = i
	}

	injectedBy := make(map[string]string)
	for _, opt := range options {
		extra, err := g.Options.Expand(opt, ctx)
		if err != nil {
			return nil, err
		}
		for _, inj := range extra {
			name := inj.Field.Name
			if by, ok := injectedBy[name]; ok {
				return nil, (&Error{Kind: NamingConflict, Message: "field is injected by both " + by + " and " + opt.Name}).fill(name, string(inj.Field.Type), ctx)
			}
			injectedBy[name] = opt.Name

			i, declared := index[name]
			switch {
			case !declared:
				index[name] = len(out)
				out = append(out, inj.Field)
			case inj.Override:
				out[i] = inj.Field
			default:
				return nil, (&Error{Kind: NamingConflict, Message: "option " + opt.Name + " injects a field that is already declared"}).fill(name, string(inj.Field.Type), ctx)
			}
		}
	}
	return out, nil
}

// checkField rejects field declarations no emitter should have to guess about.
func checkField(f schema.Field, ctx *Context) error {
	fail := func(msg string) error {
		return (&Error{Kind: InvalidField, Message: msg}).fill(f.Name, string(f.Type), ctx)
	}
	if !paths.IsIdentifier(f.Name) {
		return fail("field name is not a valid identifier")
	}
	if f.Required && f.HasDefault {
		return fail("a required field cannot declare a default")
	}
	for _, t := range f.Transformers {
		if !slices.Contains(Transformers, t) {
			return fail("unknown transformer " + quote(t))
		}
	}
	return nil
}

// transform routes a property's array value through the declared transformers.
func transform(p Property) string {
	if len(p.Transformers) == 0 {
		return p.FromArray
	}
	names := make([]string, len(p.Transformers))
	for i, t := range p.Transformers {
		names[i] = quote(t)
	}
	return "$transformers->apply([" + strings.Join(names, ", ") + "], " + p.FromArray + ")"
}
