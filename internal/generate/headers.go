// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"regexp"
	"strings"

	"github.com/dacolabs/dtogen/internal/paths"
	"github.com/dacolabs/dtogen/internal/schema"
)

// DefaultHeaderRegistry returns the header registry with one emitter per directive.
func DefaultHeaderRegistry() *HeaderRegistry {
	return NewHeaderRegistry(
		dtoHeader{},
		modelHeader{},
		tableHeader{},
		extendsHeader{},
		useHeader{},
		traitsHeader{},
	)
}

type dtoHeader struct{}

func (dtoHeader) Supports(key string) bool { return key == schema.DirectiveDTO }

func (dtoHeader) Generate(name string, h schema.Header, _ *Context) (HeaderFragment, error) {
	if !paths.IsIdentifier(h.DTO) {
		return HeaderFragment{}, Errorf(InvalidHeader, name, "class name %q is not a valid identifier", h.DTO)
	}
	return HeaderFragment{}, nil
}

type modelHeader struct{}

func (modelHeader) Supports(key string) bool { return key == schema.DirectiveModel }

func (modelHeader) Generate(name string, h schema.Header, ctx *Context) (HeaderFragment, error) {
	model := paths.Canonical(h.Model)
	if !paths.IsValidNamespace(model) {
		return HeaderFragment{}, Errorf(InvalidHeader, name, "model %q is not a valid class name", h.Model)
	}
	// an import whose short name equals the DTO would shadow it
	if strings.EqualFold(shortName(model), ctx.Class) {
		return HeaderFragment{}, nil
	}
	return HeaderFragment{Imports: []string{model}}, nil
}

var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

type tableHeader struct{}

func (tableHeader) Supports(key string) bool { return key == schema.DirectiveTable }

func (tableHeader) Generate(name string, h schema.Header, _ *Context) (HeaderFragment, error) {
	if !tablePattern.MatchString(h.Table) {
		return HeaderFragment{}, Errorf(InvalidHeader, name, "table %q is not a valid identifier", h.Table)
	}
	return HeaderFragment{Doc: []string{"Data Transfer Object for table `" + h.Table + "`."}}, nil
}

type extendsHeader struct{}

func (extendsHeader) Supports(key string) bool { return key == schema.DirectiveExtends }

func (extendsHeader) Generate(name string, h schema.Header, ctx *Context) (HeaderFragment, error) {
	base := paths.Canonical(h.Extends)
	if !paths.IsValidNamespace(base) {
		return HeaderFragment{}, Errorf(InvalidHeader, name, "base class %q is not a valid class name", h.Extends)
	}
	short := shortName(base)
	if strings.EqualFold(short, ctx.Class) {
		return HeaderFragment{}, Errorf(InvalidHeader, name, "class %s cannot extend itself", ctx.Class)
	}
	if short == base {
		if _, taken := ctx.Imports.Lookup(short); taken {
			return HeaderFragment{Extends: ctx.ClassRef(base)}, nil
		}
		return HeaderFragment{Extends: base}, nil
	}
	// a base sharing its short name with an earlier import stays fully qualified
	if imp, taken := ctx.Imports.Lookup(short); taken && imp != base {
		return HeaderFragment{Extends: `\` + base}, nil
	}
	return HeaderFragment{Imports: []string{base}, Extends: short}, nil
}

type useHeader struct{}

func (useHeader) Supports(key string) bool { return key == schema.DirectiveUse }

func (useHeader) Generate(name string, h schema.Header, ctx *Context) (HeaderFragment, error) {
	var frag HeaderFragment
	var pending Imports
	for _, u := range h.Use {
		u = paths.Canonical(u)
		if !paths.IsValidNamespace(u) {
			return HeaderFragment{}, Errorf(InvalidHeader, name, "import %q is not a valid class name", u)
		}
		short := shortName(u)
		if strings.EqualFold(short, ctx.Class) {
			return HeaderFragment{}, Errorf(InvalidHeader, name, "import %q has the same name as class %s", u, ctx.Class)
		}
		for _, imports := range []*Imports{ctx.Imports, &pending} {
			if other, taken := imports.Lookup(short); taken && other != u {
				return HeaderFragment{}, Errorf(InvalidHeader, name, "imports %q and %q share the name %s", other, u, short)
			}
		}
		pending.Add(u)
		frag.Imports = append(frag.Imports, u)
	}
	return frag, nil
}

type traitsHeader struct{}

func (traitsHeader) Supports(key string) bool { return key == schema.DirectiveTraits }

// Generate maps behavior tags onto option bundles.
func (traitsHeader) Generate(name string, h schema.Header, _ *Context) (HeaderFragment, error) {
	var frag HeaderFragment
	for _, tag := range h.Traits {
		bundle, ok := traitBundles[tag]
		if !ok {
			return HeaderFragment{}, Errorf(InvalidHeader, name, "unknown trait %q", tag)
		}
		frag.Bundles = append(frag.Bundles, bundle)
	}
	return frag, nil
}
