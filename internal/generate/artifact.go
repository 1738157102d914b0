// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"slices"
	"sort"
	"strings"

	"github.com/dacolabs/dtogen/internal/schema"
)

// Artifact is the assembled output for one definition, ready for rendering.
type Artifact struct {
	Namespace  string     `json:"namespace"`
	ClassName  string     `json:"class_name"`
	BaseClass  string     `json:"base_class,omitempty"`
	Model      string     `json:"model"`
	Doc        []string   `json:"doc,omitempty"`
	Imports    Imports    `json:"imports"`
	Properties []Property `json:"properties"`
	Rules      []RuleSet  `json:"rules,omitempty"`
	Relations  []string   `json:"relations,omitempty"`
	Methods    []string   `json:"methods,omitempty"`
	Source     string     `json:"source,omitempty"`
}

// FQN returns the fully qualified class name of the artifact.
func (a *Artifact) FQN() string {
	return `\` + a.Namespace + `\` + a.ClassName
}

// PropertyNames returns the constructor parameter names in order.
func (a *Artifact) PropertyNames() []string {
	names := make([]string, len(a.Properties))
	for i, p := range a.Properties {
		names[i] = p.Name
	}
	return names
}

// Property is a typed constructor parameter with its conversion expressions.
type Property struct {
	Name         string      `json:"name"`
	Kind         schema.Kind `json:"kind"`
	Type         string      `json:"type"`
	Nullable     bool        `json:"nullable"`
	Default      string      `json:"default,omitempty"` // literal source; empty when the parameter has none
	Doc          string      `json:"doc,omitempty"`
	FromModel    string      `json:"from_model"`
	FromArray    string      `json:"from_array"`
	Export       string      `json:"export"`
	Transformers []string    `json:"transformers,omitempty"`
}

// HasDefault reports whether the parameter carries a default literal.
func (p Property) HasDefault() bool {
	return p.Default != ""
}

// Rule is a single validation rule. Raw rules are emitted as source, others as quoted tokens.
type Rule struct {
	Token string `json:"token"`
	Raw   bool   `json:"raw,omitempty"`
}

// Source renders the rule as a PHP expression.
func (r Rule) Source() string {
	if r.Raw {
		return r.Token
	}
	return quote(r.Token)
}

// RuleSet is the rule table entry for one field.
type RuleSet struct {
	Field string `json:"field"`
	Rules []Rule `json:"rules"`
}

// Tokens returns the rule tokens in order.
func (s RuleSet) Tokens() []string {
	out := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		out[i] = r.Token
	}
	return out
}

// Imports is an alphabetically sorted, duplicate-free list of imported class names.
type Imports struct {
	List []string `json:"list"`
}

// Add inserts a class name if not already present. Leading separators are trimmed.
// It reports false, leaving the list unchanged, when another import already binds
// the same short name.
func (i *Imports) Add(name string) bool {
	name = strings.TrimLeft(strings.TrimSpace(name), `\`)
	if name == "" {
		return true
	}
	idx := sort.SearchStrings(i.List, name)
	if idx < len(i.List) && i.List[idx] == name {
		return true
	}
	if _, taken := i.Lookup(shortName(name)); taken {
		return false
	}
	i.List = slices.Insert(i.List, idx, name)
	return true
}

// Lookup returns the import bound to a short name. Class names compare case-insensitively.
func (i *Imports) Lookup(short string) (string, bool) {
	for _, imp := range i.List {
		if strings.EqualFold(shortName(imp), short) {
			return imp, true
		}
	}
	return "", false
}

// Has reports whether name is imported.
func (i *Imports) Has(name string) bool {
	name = strings.TrimLeft(name, `\`)
	idx := sort.SearchStrings(i.List, name)
	return idx < len(i.List) && i.List[idx] == name
}

// Context carries the per-run state passed to every emitter.
// A Context is created for a single definition and never shared between runs.
type Context struct {
	Source     string
	Class      string
	Namespace  string
	Definition *schema.Definition
	Types      TypeResolver
	Imports    *Imports
	MaxDepth   int

	path []string
}

func newContext(def *schema.Definition, class, namespace string, types TypeResolver, maxDepth int) *Context {
	return &Context{
		Source:     def.Source,
		Class:      class,
		Namespace:  namespace,
		Definition: def,
		Types:      types,
		Imports:    &Imports{},
		MaxDepth:   maxDepth,
		path:       []string{class},
	}
}

// ClassRef resolves a class reference to a fully qualified name.
// Qualified names are kept, bare names are placed in the current namespace.
func (c *Context) ClassRef(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, ".", `\`))
	if strings.Contains(name, `\`) {
		return `\` + strings.TrimLeft(name, `\`)
	}
	if c.Namespace == "" {
		return `\` + name
	}
	return `\` + c.Namespace + `\` + name
}

// CanNest reports whether a nested DTO of the given class may be typed as such.
// It fails for cycles back to a class being generated and beyond MaxDepth.
func (c *Context) CanNest(class string) bool {
	if c.MaxDepth > 0 && len(c.path) >= c.MaxDepth {
		return false
	}
	short := shortName(class)
	for _, p := range c.path {
		if shortName(p) == short {
			return false
		}
	}
	return true
}

func shortName(class string) string {
	class = strings.ReplaceAll(class, ".", `\`)
	if i := strings.LastIndex(class, `\`); i >= 0 {
		return class[i+1:]
	}
	return class
}
