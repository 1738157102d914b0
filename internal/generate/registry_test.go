// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/dtogen/internal/schema"
)

func testContext() *Context {
	def := &schema.Definition{
		Source: "defs/test.yaml",
		Header: schema.Header{DTO: "TestDTO"},
		Fields: []schema.Field{{Name: "name", Type: schema.KindString, Required: true}},
	}
	return newContext(def, "TestDTO", `App\DTO`, PHPResolver{}, DefaultMaxDepth)
}

// sampleField returns a field of the given kind that its emitter accepts.
func sampleField(kind schema.Kind) schema.Field {
	f := schema.Field{Name: "value", Type: kind, Required: true}
	switch kind {
	case schema.KindDTO, schema.KindCollection:
		f.Class = "OtherDTO"
	case schema.KindEnum:
		f.Values = []string{"draft", "published"}
	}
	return f
}

func TestFieldRegistry_ExhaustiveDispatch(t *testing.T) {
	reg := DefaultFieldRegistry()

	for _, kind := range schema.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			require.True(t, reg.Supports(kind))

			p, err := reg.Generate(sampleField(kind), testContext())
			require.NoError(t, err)
			assert.Equal(t, "value", p.Name)
			assert.NotEmpty(t, p.Type)
			assert.NotEmpty(t, p.FromModel)
			assert.NotEmpty(t, p.FromArray)
			assert.NotEmpty(t, p.Export)
		})
	}
}

func TestValidatorRegistry_ExhaustiveDispatch(t *testing.T) {
	reg := DefaultValidatorRegistry()

	for _, kind := range schema.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			rules, err := reg.Generate(sampleField(kind), testContext())
			require.NoError(t, err)
			require.NotEmpty(t, rules)
			assert.Equal(t, "required", rules[0].Token)
		})
	}
}

func TestFieldRegistry_Unsupported(t *testing.T) {
	reg := DefaultFieldRegistry()

	for _, kind := range []schema.Kind{"unsupported_marker", "", "String", "varchar"} {
		t.Run(string(kind), func(t *testing.T) {
			p, err := reg.Generate(schema.Field{Name: "x", Type: kind, Required: true}, testContext())
			require.Error(t, err)
			assert.Empty(t, p.Name)
			assert.ErrorIs(t, err, ErrUnsupportedFieldType)

			ge, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, "x", ge.Field)
			assert.Equal(t, string(kind), ge.KindTag)
			assert.Equal(t, "TestDTO", ge.Class)
			assert.Equal(t, "defs/test.yaml", ge.Source)
		})
	}
}

func TestRelationRegistry(t *testing.T) {
	reg := DefaultRelationRegistry()
	ctx := testContext()

	frag, err := reg.Generate(schema.Relation{Name: "author", Type: schema.BelongsTo, Target: "UserDTO"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, `public ?\App\DTO\UserDTO $author = null;`, frag)

	frag, err = reg.Generate(schema.Relation{Name: "tags", Type: schema.BelongsToMany, Target: `App\Tags\TagDTO`}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "/** @var \\App\\Tags\\TagDTO[] */\npublic array $tags = [];", frag)

	_, err = reg.Generate(schema.Relation{Name: "owner", Type: "ownedBy", Target: "UserDTO"}, ctx)
	assert.True(t, IsKind(err, RelationGenerationFailure))

	_, err = reg.Generate(schema.Relation{Name: "owner", Type: schema.HasOne}, ctx)
	require.True(t, IsKind(err, RelationGenerationFailure))
	ge, _ := AsError(err)
	assert.Equal(t, "hasOne", ge.KindTag)
	assert.Equal(t, "owner", ge.Field)
}

type stubField struct {
	kinds kindSet[schema.Kind]
	prop  Property
	err   error
}

func (s stubField) Supports(k schema.Kind) bool { return s.kinds.Supports(k) }

func (s stubField) Generate(string, schema.Field, *Context) (Property, error) {
	return s.prop, s.err
}

func TestRegistry_FirstMatchWins(t *testing.T) {
	reg := NewFieldRegistry(
		stubField{kinds: kindSet[schema.Kind]{"money"}, prop: Property{Type: "first"}},
		stubField{kinds: kindSet[schema.Kind]{"money", "cash"}, prop: Property{Type: "second"}},
	)

	p, err := reg.Generate(schema.Field{Name: "a", Type: "money"}, testContext())
	require.NoError(t, err)
	assert.Equal(t, "first", p.Type)

	p, err = reg.Generate(schema.Field{Name: "a", Type: "cash"}, testContext())
	require.NoError(t, err)
	assert.Equal(t, "second", p.Type)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistry_ErrorEnrichment(t *testing.T) {
	boom := errors.New("boom")

	t.Run("generic error is wrapped", func(t *testing.T) {
		reg := NewFieldRegistry(stubField{kinds: kindSet[schema.Kind]{"money"}, err: boom})

		_, err := reg.Generate(schema.Field{Name: "price", Type: "money"}, testContext())
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, ErrInvalidField)

		ge, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, &Error{
			Kind:    InvalidField,
			Source:  "defs/test.yaml",
			Field:   "price",
			KindTag: "money",
			Class:   "TestDTO",
			Cause:   boom,
		}, ge)
	})

	t.Run("partial structured error is filled", func(t *testing.T) {
		reg := NewFieldRegistry(stubField{kinds: kindSet[schema.Kind]{"money"}, err: Errorf(InvalidField, "", "negative")})

		_, err := reg.Generate(schema.Field{Name: "price", Type: "money"}, testContext())
		ge, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, "price", ge.Field)
		assert.Equal(t, "money", ge.KindTag)
		assert.Equal(t, "TestDTO", ge.Class)
		assert.Equal(t, "negative", ge.Message)
	})

	t.Run("wrapped structured error keeps its wrapper", func(t *testing.T) {
		inner := Errorf(InvalidField, "", "inner")
		reg := NewFieldRegistry(stubField{kinds: kindSet[schema.Kind]{"money"}, err: fmt.Errorf("converting amount: %w", inner)})

		_, err := reg.Generate(schema.Field{Name: "price", Type: "money"}, testContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "converting amount: ")
		assert.Contains(t, err.Error(), `invalid field "price" (type "money") in TestDTO`)
		assert.ErrorIs(t, err, ErrInvalidField)

		ge, ok := AsError(err)
		require.True(t, ok)
		assert.Same(t, inner, ge)
		assert.Equal(t, "price", ge.Field)
	})

	t.Run("complete structured error passes through", func(t *testing.T) {
		full := &Error{Kind: InvalidField, Source: "other.yaml", Field: "cost", KindTag: "cash", Class: "OtherDTO", Message: "bad"}
		reg := NewFieldRegistry(stubField{kinds: kindSet[schema.Kind]{"money"}, err: full})

		_, err := reg.Generate(schema.Field{Name: "price", Type: "money"}, testContext())
		ge, ok := AsError(err)
		require.True(t, ok)
		assert.Equal(t, &Error{Kind: InvalidField, Source: "other.yaml", Field: "cost", KindTag: "cash", Class: "OtherDTO", Message: "bad"}, ge)
	})
}

func TestOptionRegistry(t *testing.T) {
	reg := DefaultOptionRegistry()
	ctx := testContext()

	fields, err := reg.Expand(schema.Option{Name: "softDeletes", Value: true}, ctx)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "deleted_at", fields[0].Field.Name)
	assert.False(t, fields[0].Field.Required)

	fields, err = reg.Expand(schema.Option{Name: "timestamps", Value: false}, ctx)
	require.NoError(t, err)
	assert.Empty(t, fields)

	methods, err := reg.Generate(schema.Option{Name: "immutable", Value: "yes"}, ctx)
	require.NoError(t, err)
	assert.Len(t, methods, 4)

	fields, err = reg.Expand(schema.Option{Name: "immutable", Value: true}, ctx)
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = reg.Expand(schema.Option{Name: "teleport", Value: true}, ctx)
	assert.ErrorIs(t, err, ErrUnsupportedOption)
	_, err = reg.Generate(schema.Option{Name: "teleport", Value: true}, ctx)
	assert.ErrorIs(t, err, ErrUnsupportedOption)

	_, err = reg.Expand(schema.Option{Name: "sluggable", Value: map[string]any{"from": "title"}}, ctx)
	assert.ErrorIs(t, err, ErrInvalidOption)
	ge, _ := AsError(err)
	assert.Equal(t, "sluggable", ge.Field)
}

func TestHeaderRegistry(t *testing.T) {
	reg := DefaultHeaderRegistry()
	ctx := testContext()
	h := schema.Header{
		DTO:     "TestDTO",
		Model:   "App.Models.Test",
		Table:   "tests",
		Extends: `App\DTO\BaseDTO`,
		Use:     []string{`App\Support\Money`},
		Traits:  []string{"HasTimestamps", "HasUuid"},
	}

	frag, err := reg.Generate(schema.DirectiveModel, h, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{`App\Models\Test`}, frag.Imports)

	frag, err = reg.Generate(schema.DirectiveTable, h, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data Transfer Object for table `tests`."}, frag.Doc)

	frag, err = reg.Generate(schema.DirectiveExtends, h, ctx)
	require.NoError(t, err)
	assert.Equal(t, "BaseDTO", frag.Extends)
	assert.Equal(t, []string{`App\DTO\BaseDTO`}, frag.Imports)

	frag, err = reg.Generate(schema.DirectiveTraits, h, ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{BundleTimestamps, BundleUUID}, frag.Bundles)

	h.Traits = []string{"HasMagic"}
	_, err = reg.Generate(schema.DirectiveTraits, h, ctx)
	assert.ErrorIs(t, err, ErrInvalidHeader)

	h.Model = "TestDTO"
	frag, err = reg.Generate(schema.DirectiveModel, h, ctx)
	require.NoError(t, err)
	assert.Empty(t, frag.Imports, "a model named like the DTO is not imported")

	_, err = reg.Generate("namespace", h, ctx)
	assert.ErrorIs(t, err, ErrUnsupportedHeader)
}

func TestImports_Add(t *testing.T) {
	var imp Imports
	imp.Add(`App\Models\User`)
	imp.Add(`\App\Enums\Status`)
	imp.Add(`App\Models\User`)
	imp.Add("")
	imp.Add(`App\Support\Money`)

	assert.Equal(t, []string{`App\Enums\Status`, `App\Models\User`, `App\Support\Money`}, imp.List)
	assert.True(t, imp.Has(`\App\Models\User`))
	assert.False(t, imp.Has(`App\Models`))

	assert.False(t, imp.Add(`App\Base\User`), "short name already bound")
	assert.False(t, imp.Add(`App\Legacy\money`), "short names compare case-insensitively")
	assert.True(t, imp.Add(`App\Models\User`))
	assert.Equal(t, []string{`App\Enums\Status`, `App\Models\User`, `App\Support\Money`}, imp.List)

	other, ok := imp.Lookup("status")
	assert.True(t, ok)
	assert.Equal(t, `App\Enums\Status`, other)
}

func TestContext_CanNest(t *testing.T) {
	ctx := testContext()
	assert.True(t, ctx.CanNest("AddressDTO"))
	assert.False(t, ctx.CanNest("TestDTO"))
	assert.False(t, ctx.CanNest(`App\DTO\TestDTO`))

	ctx.MaxDepth = 1
	assert.False(t, ctx.CanNest("AddressDTO"))
}

func TestError_Message(t *testing.T) {
	err := &Error{Kind: UnsupportedFieldType, Source: "p.yaml", Field: "x", KindTag: "blob", Class: "ProductDTO", Message: "no emitter registered"}
	assert.Equal(t, `unsupported field type "x" (type "blob") in ProductDTO [p.yaml]: no emitter registered`, err.Error())
	assert.NotEmpty(t, err.Suggestions())
	assert.True(t, IsKind(err, UnsupportedFieldType))
	assert.False(t, IsKind(errors.New("x"), UnsupportedFieldType))
}
