// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/dacolabs/dtogen/internal/schema"
)

// DefaultFieldRegistry returns the field registry with every built-in emitter.
// Specific emitters come before the generic scalar ones.
func DefaultFieldRegistry() *FieldRegistry {
	return NewFieldRegistry(
		uuidField{kindSet[schema.Kind]{schema.KindUUID}},
		enumField{kindSet[schema.Kind]{schema.KindEnum}},
		nestedField{kindSet[schema.Kind]{schema.KindDTO}},
		collectionField{kindSet[schema.Kind]{schema.KindCollection}},
		dateField{kindSet[schema.Kind]{schema.KindDate, schema.KindDateTime, schema.KindTime}},
		scalarField{kindSet[schema.Kind]{schema.KindDecimal}},
		scalarField{kindSet[schema.Kind]{schema.KindString, schema.KindText, schema.KindID}},
		scalarField{kindSet[schema.Kind]{schema.KindInteger, schema.KindInt, schema.KindBigInt}},
		scalarField{kindSet[schema.Kind]{schema.KindFloat, schema.KindDouble}},
		scalarField{kindSet[schema.Kind]{schema.KindBoolean, schema.KindBool}},
		scalarField{kindSet[schema.Kind]{schema.KindArray, schema.KindJSON}},
	)
}

// scalarField emits properties whose values pass through unchanged.
type scalarField struct{ kindSet[schema.Kind] }

func (scalarField) Generate(name string, f schema.Field, ctx *Context) (Property, error) {
	return scalarProperty(name, f, ctx)
}

func scalarProperty(name string, f schema.Field, ctx *Context) (Property, error) {
	p := Property{
		Name:      name,
		Kind:      f.Type,
		Type:      ctx.Types.ResolveType(f.Type, f.Nullable()),
		Nullable:  f.Nullable(),
		FromModel: "$model->" + name,
		Export:    "$this->" + name,
	}
	def, err := defaultLiteral(f, ctx)
	if err != nil {
		return p, err
	}
	p.Default = def
	p.FromArray = arrayValue(name, p)
	return p, nil
}

func defaultLiteral(f schema.Field, ctx *Context) (string, error) {
	if !f.HasDefault {
		if f.Nullable() {
			return phpNull, nil
		}
		return "", nil
	}
	lit, err := ctx.Types.CastDefault(f.Type, f.Default)
	if err != nil {
		return "", Errorf(InvalidField, f.Name, "%v", err)
	}
	return lit, nil
}

func arrayKey(name string) string {
	return "$data[" + quote(name) + "]"
}

// arrayValue reads a scalar from the input array, falling back to the default.
func arrayValue(name string, p Property) string {
	if p.HasDefault() {
		return arrayKey(name) + " ?? " + p.Default
	}
	return arrayKey(name)
}

// orNull wraps a conversion of the array value so that a missing key yields fallback.
func orNull(name, conversion, fallback string) string {
	if fallback == "" {
		return conversion
	}
	return "isset(" + arrayKey(name) + ") ? " + conversion + " : " + fallback
}

type uuidField struct{ kindSet[schema.Kind] }

func (uuidField) Generate(name string, f schema.Field, ctx *Context) (Property, error) {
	if s, ok := f.Default.(string); ok && f.HasDefault {
		if _, err := uuid.Parse(s); err != nil {
			return Property{}, Errorf(InvalidField, name, "default %q is not a valid UUID", s)
		}
	}
	return scalarProperty(name, f, ctx)
}

type dateField struct{ kindSet[schema.Kind] }

func (dateField) Generate(name string, f schema.Field, ctx *Context) (Property, error) {
	p, err := scalarProperty(name, f, ctx)
	if err != nil {
		return p, err
	}
	p.FromArray = orNull(name, phpDate+"::parse("+arrayKey(name)+")", p.Default)
	if p.Nullable {
		p.Export = "$this->" + name + "?->toIso8601String()"
	} else {
		p.Export = "$this->" + name + "->toIso8601String()"
	}
	return p, nil
}

type enumField struct{ kindSet[schema.Kind] }

func (enumField) Generate(name string, f schema.Field, ctx *Context) (Property, error) {
	switch {
	case f.Class != "":
		return enumClassProperty(name, f, ctx)
	case len(f.Values) > 0:
		if f.HasDefault && f.Default != nil && !slices.Contains(f.Values, fmt.Sprint(f.Default)) {
			return Property{}, Errorf(InvalidField, name, "default %v is not one of %s", f.Default, strings.Join(f.Values, ", "))
		}
		return scalarProperty(name, f, ctx)
	}
	return Property{}, Errorf(InvalidField, name, "enum field needs a class or a list of values")
}

func enumClassProperty(name string, f schema.Field, ctx *Context) (Property, error) {
	ref := ctx.ClassRef(f.Class)
	p := Property{
		Name:      name,
		Kind:      f.Type,
		Type:      nullableType(ref, f.Nullable()),
		Nullable:  f.Nullable(),
		FromModel: "$model->" + name,
	}

	switch v := f.Default.(type) {
	case nil:
		if f.Nullable() {
			p.Default = phpNull
		}
	case string:
		p.Default = ref + "::" + strings.ToUpper(v)
	default:
		return p, Errorf(InvalidField, name, "enum default %v must name a case", v)
	}

	p.FromArray = orNull(name, ref+"::from("+arrayKey(name)+")", p.Default)
	if p.Nullable {
		p.Export = "$this->" + name + "?->value"
	} else {
		p.Export = "$this->" + name + "->value"
	}
	return p, nil
}

type nestedField struct{ kindSet[schema.Kind] }

func (nestedField) Generate(name string, f schema.Field, ctx *Context) (Property, error) {
	if f.Class == "" {
		return Property{}, Errorf(InvalidField, name, "nested dto field needs a class")
	}
	if !ctx.CanNest(f.Class) {
		return scalarProperty(name, f, ctx)
	}

	ref := ctx.ClassRef(f.Class)
	def, err := defaultLiteral(f, ctx)
	if err != nil {
		return Property{}, err
	}
	p := Property{
		Name:     name,
		Kind:     f.Type,
		Type:     nullableType(ref, f.Nullable()),
		Nullable: f.Nullable(),
		Default:  def,
	}
	if p.Nullable {
		p.FromModel = "$model->" + name + " ? " + ref + "::fromModel($model->" + name + ") : null"
		p.Export = "$this->" + name + "?->toArray()"
	} else {
		p.FromModel = ref + "::fromModel($model->" + name + ")"
		p.Export = "$this->" + name + "->toArray()"
	}
	p.FromArray = orNull(name, ref+"::fromArray("+arrayKey(name)+")", p.Default)
	return p, nil
}

type collectionField struct{ kindSet[schema.Kind] }

func (collectionField) Generate(name string, f schema.Field, ctx *Context) (Property, error) {
	if f.Class == "" {
		return Property{}, Errorf(InvalidField, name, "collection field needs an element class")
	}
	p, err := scalarProperty(name, f, ctx)
	if err != nil || !ctx.CanNest(f.Class) {
		return p, err
	}

	ref := ctx.ClassRef(f.Class)
	fallback := p.Default
	if fallback == "" || fallback == phpNull {
		fallback = "[]"
	}
	p.Doc = "@var " + ref + "[]"
	p.FromModel = "collect($model->" + name + ")->map(fn ($item) => " + ref + "::fromModel($item))->all()"
	p.FromArray = "array_map(fn (array $item) => " + ref + "::fromArray($item), " + arrayKey(name) + " ?? " + fallback + ")"
	p.Export = "array_map(fn (" + ref + " $item) => $item->toArray(), $this->" + name + " ?? [])"
	return p, nil
}
