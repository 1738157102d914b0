// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dacolabs/dtogen/internal/schema"
)

// TypeResolver converts field kind tags to target-language types and default literals.
// Both methods share the same kind vocabulary so a field's type and its default always agree.
type TypeResolver interface {
	// ResolveType maps a kind tag to a target type, qualified as optional when nullable.
	// Unknown kinds resolve to the top type.
	ResolveType(kind schema.Kind, nullable bool) string

	// CastDefault renders a default value as a target-language literal.
	// Unknown kinds and nil values render as the null literal.
	// An error is returned when the value cannot be represented for the kind.
	CastDefault(kind schema.Kind, value any) (string, error)
}

// PHP type names.
const (
	phpString = "string"
	phpInt    = "int"
	phpFloat  = "float"
	phpBool   = "bool"
	phpArray  = "array"
	phpMixed  = "mixed"
	phpDate   = `\Carbon\Carbon`
	phpNull   = "null"
)

var phpTypes = map[schema.Kind]string{
	schema.KindString:     phpString,
	schema.KindText:       phpString,
	schema.KindID:         phpString,
	schema.KindUUID:       phpString,
	schema.KindEnum:       phpString,
	schema.KindInteger:    phpInt,
	schema.KindInt:        phpInt,
	schema.KindBigInt:     phpInt,
	schema.KindFloat:      phpFloat,
	schema.KindDouble:     phpFloat,
	schema.KindDecimal:    phpString, // arbitrary precision
	schema.KindBoolean:    phpBool,
	schema.KindBool:       phpBool,
	schema.KindArray:      phpArray,
	schema.KindJSON:       phpArray,
	schema.KindDTO:        phpArray,
	schema.KindCollection: phpArray,
	schema.KindDate:       phpDate,
	schema.KindDateTime:   phpDate,
	schema.KindTime:       phpDate,
}

// PHPResolver resolves kinds to PHP 8 types and literals.
type PHPResolver struct{}

// ResolveType implements TypeResolver.
func (PHPResolver) ResolveType(kind schema.Kind, nullable bool) string {
	t, ok := phpTypes[kind]
	if !ok {
		return phpMixed
	}
	return nullableType(t, nullable)
}

// nullableType qualifies t with PHP's nullable marker. mixed already includes null.
func nullableType(t string, nullable bool) string {
	if !nullable || t == phpMixed || strings.HasPrefix(t, "?") {
		return t
	}
	return "?" + t
}

// CastDefault implements TypeResolver.
func (PHPResolver) CastDefault(kind schema.Kind, value any) (string, error) {
	if value == nil {
		return phpNull, nil
	}
	t, ok := phpTypes[kind]
	if !ok {
		return phpNull, nil
	}

	switch kind {
	case schema.KindDecimal:
		s, ok := numericString(value)
		if !ok {
			return "", fmt.Errorf("default %v is not a number", value)
		}
		return quote(s), nil
	case schema.KindDate, schema.KindDateTime, schema.KindTime:
		return "", fmt.Errorf("date defaults are not supported, use null")
	case schema.KindDTO:
		return "", fmt.Errorf("nested object defaults are not supported, use null")
	}

	switch t {
	case phpString:
		return quote(fmt.Sprint(value)), nil
	case phpInt:
		return intLiteral(value)
	case phpFloat:
		s, ok := numericString(value)
		if !ok {
			return "", fmt.Errorf("default %v is not a number", value)
		}
		return s, nil
	case phpBool:
		return boolLiteral(value)
	case phpArray:
		return arrayLiteral(value)
	}
	return phpNull, nil
}

func intLiteral(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float64:
		if isFinite(n) && n == math.Trunc(n) && math.Abs(n) < 1<<63 {
			return strconv.FormatInt(int64(n), 10), nil
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return strconv.FormatInt(i, 10), nil
		}
	}
	return "", fmt.Errorf("default %v is not an integer", v)
}

func numericString(v any) (string, bool) {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n), true
	case int64:
		return strconv.FormatInt(n, 10), true
	case uint64:
		return strconv.FormatUint(n, 10), true
	case float64:
		if !isFinite(n) {
			return "", false
		}
		return strconv.FormatFloat(n, 'f', -1, 64), true
	case string:
		s := strings.TrimSpace(n)
		if f, err := strconv.ParseFloat(s, 64); err == nil && isFinite(f) {
			return s, true
		}
	}
	return "", false
}

// isFinite rejects infinities and NaN, which have no PHP literal form.
func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// finite reports whether every number inside a decoded value is finite.
func finite(v any) bool {
	switch x := v.(type) {
	case float64:
		return isFinite(x)
	case []any:
		for _, item := range x {
			if !finite(item) {
				return false
			}
		}
	case map[string]any:
		for _, item := range x {
			if !finite(item) {
				return false
			}
		}
	}
	return true
}

func boolLiteral(v any) (string, error) {
	switch b := v.(type) {
	case bool:
		return strconv.FormatBool(b), nil
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return strconv.FormatBool(parsed), nil
		}
	}
	return "", fmt.Errorf("default %v is not a boolean", v)
}

func arrayLiteral(v any) (string, error) {
	switch a := v.(type) {
	case []any, map[string]any:
		if !finite(a) {
			return "", fmt.Errorf("default %v holds a non-finite number", v)
		}
		return literal(a), nil
	case string:
		switch strings.TrimSpace(a) {
		case "[]", "{}":
			return "[]", nil
		}
	}
	return "", fmt.Errorf("default %v is not an array", v)
}

// literal renders an arbitrary decoded value as a PHP literal. Map keys are sorted.
func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return phpNull
	case bool:
		return strconv.FormatBool(x)
	case int, int64, uint64, float64:
		s, _ := numericString(x)
		return s
	case string:
		return quote(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = literal(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = quote(k) + " => " + literal(x[k])
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return quote(fmt.Sprint(v))
}

// quote renders s as a single-quoted PHP string.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
