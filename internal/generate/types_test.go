// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/dtogen/internal/schema"
)

func TestPHPResolver_ResolveType(t *testing.T) {
	r := PHPResolver{}

	tests := []struct {
		kind     schema.Kind
		want     string
		nullable string
	}{
		{schema.KindString, "string", "?string"},
		{schema.KindInteger, "int", "?int"},
		{schema.KindBigInt, "int", "?int"},
		{schema.KindFloat, "float", "?float"},
		{schema.KindDouble, "float", "?float"},
		{schema.KindDecimal, "string", "?string"},
		{schema.KindBoolean, "bool", "?bool"},
		{schema.KindArray, "array", "?array"},
		{schema.KindJSON, "array", "?array"},
		{schema.KindDate, `\Carbon\Carbon`, `?\Carbon\Carbon`},
		{schema.KindDateTime, `\Carbon\Carbon`, `?\Carbon\Carbon`},
		{schema.KindTime, `\Carbon\Carbon`, `?\Carbon\Carbon`},
		{schema.KindUUID, "string", "?string"},
		{"whatever", "mixed", "mixed"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, r.ResolveType(tt.kind, false))
			assert.Equal(t, tt.nullable, r.ResolveType(tt.kind, true))
		})
	}
}

func TestPHPResolver_CastDefault(t *testing.T) {
	r := PHPResolver{}

	tests := []struct {
		name  string
		kind  schema.Kind
		value any
		want  string
	}{
		{"string", schema.KindString, "active", "'active'"},
		{"string escaped", schema.KindString, `it's a\b`, `'it\'s a\\b'`},
		{"uuid", schema.KindUUID, "4f7b2a3e-0000-4000-8000-000000000000", "'4f7b2a3e-0000-4000-8000-000000000000'"},
		{"integer", schema.KindInteger, 42, "42"},
		{"integer from string", schema.KindInt, "7", "7"},
		{"integral float as integer", schema.KindBigInt, float64(3), "3"},
		{"float", schema.KindFloat, 9.99, "9.99"},
		{"float from int", schema.KindDouble, 2, "2"},
		{"decimal quoted", schema.KindDecimal, 19.99, "'19.99'"},
		{"decimal string", schema.KindDecimal, "0.10", "'0.10'"},
		{"boolean", schema.KindBoolean, true, "true"},
		{"boolean string", schema.KindBool, "false", "false"},
		{"empty array", schema.KindArray, []any{}, "[]"},
		{"list", schema.KindArray, []any{"a", 1, true}, "['a', 1, true]"},
		{"map sorted", schema.KindJSON, map[string]any{"b": 2, "a": []any{nil}}, "['a' => [null], 'b' => 2]"},
		{"array string", schema.KindJSON, "[]", "[]"},
		{"nil", schema.KindString, nil, "null"},
		{"nil date", schema.KindDate, nil, "null"},
		{"unknown kind", "mystery", "x", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.CastDefault(tt.kind, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPHPResolver_CastDefaultErrors(t *testing.T) {
	r := PHPResolver{}

	tests := []struct {
		name  string
		kind  schema.Kind
		value any
	}{
		{"integer text", schema.KindInteger, "many"},
		{"fractional integer", schema.KindInteger, 1.5},
		{"float text", schema.KindFloat, "pi"},
		{"decimal text", schema.KindDecimal, "cheap"},
		{"boolean text", schema.KindBoolean, "maybe"},
		{"array scalar", schema.KindArray, "x"},
		{"date", schema.KindDateTime, "2024-01-01"},
		{"nested", schema.KindDTO, map[string]any{}},
		{"infinite float", schema.KindFloat, math.Inf(1)},
		{"infinite float text", schema.KindFloat, "-Inf"},
		{"nan decimal", schema.KindDecimal, math.NaN()},
		{"nan decimal text", schema.KindDecimal, "NaN"},
		{"infinite integer", schema.KindInteger, math.Inf(-1)},
		{"infinite array item", schema.KindArray, []any{1, math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.CastDefault(tt.kind, tt.value)
			assert.Error(t, err)
		})
	}
}

// Every kind's default literal must be a valid value of the kind's resolved type.
func TestPHPResolver_TypeDefaultAgreement(t *testing.T) {
	r := PHPResolver{}
	samples := map[string]any{
		"string":        "x",
		"int":           12,
		"float":         1.25,
		"bool":          true,
		"array":         []any{"a"},
		`\Carbon\Carbon`: nil,
	}
	intLit := regexp.MustCompile(`^-?\d+$`)
	floatLit := regexp.MustCompile(`^-?\d+(\.\d+)?$`)

	for _, kind := range schema.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			typ := r.ResolveType(kind, false)
			require.NotEqual(t, "mixed", typ, "every known kind has a concrete type")

			nullable := r.ResolveType(kind, true)
			assert.Equal(t, "?"+typ, nullable)

			value, ok := samples[typ]
			require.True(t, ok, "no sample for %s", typ)
			if kind == schema.KindDecimal {
				value = "10.50"
			}
			if kind == schema.KindDTO {
				value = nil
			}

			lit, err := r.CastDefault(kind, value)
			require.NoError(t, err)

			switch {
			case value == nil:
				assert.Equal(t, "null", lit)
			case typ == "string":
				assert.True(t, strings.HasPrefix(lit, "'") && strings.HasSuffix(lit, "'"), lit)
			case typ == "int":
				assert.Regexp(t, intLit, lit)
			case typ == "float":
				assert.Regexp(t, floatLit, lit)
			case typ == "bool":
				assert.Contains(t, []string{"true", "false"}, lit)
			case typ == "array":
				assert.True(t, strings.HasPrefix(lit, "["), lit)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `'App\\Models'`, quote(`App\Models`))
	assert.Equal(t, `'O\'Brien'`, quote("O'Brien"))
}
