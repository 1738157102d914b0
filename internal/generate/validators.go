// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"strings"

	"github.com/dacolabs/dtogen/internal/schema"
)

// DefaultValidatorRegistry returns the validator registry with every built-in emitter.
func DefaultValidatorRegistry() *ValidatorRegistry {
	return NewValidatorRegistry(
		enumRules{kindSet[schema.Kind]{schema.KindEnum}},
		typedRules{kindSet[schema.Kind]{schema.KindString, schema.KindText, schema.KindID}, "string"},
		typedRules{kindSet[schema.Kind]{schema.KindUUID}, "uuid"},
		typedRules{kindSet[schema.Kind]{schema.KindInteger, schema.KindInt, schema.KindBigInt}, "integer"},
		typedRules{kindSet[schema.Kind]{schema.KindFloat, schema.KindDouble, schema.KindDecimal}, "numeric"},
		typedRules{kindSet[schema.Kind]{schema.KindBoolean, schema.KindBool}, "boolean"},
		typedRules{kindSet[schema.Kind]{schema.KindDate, schema.KindDateTime, schema.KindTime}, "date"},
		typedRules{kindSet[schema.Kind]{schema.KindArray, schema.KindJSON, schema.KindDTO, schema.KindCollection}, "array"},
	)
}

// typedRules emits a presence rule, the kind's base rule, then the declared rules.
type typedRules struct {
	kindSet[schema.Kind]
	base string
}

func (v typedRules) Generate(name string, f schema.Field, _ *Context) ([]Rule, error) {
	return buildRules(f, Rule{Token: v.base})
}

type enumRules struct{ kindSet[schema.Kind] }

func (enumRules) Generate(name string, f schema.Field, ctx *Context) ([]Rule, error) {
	switch {
	case f.Class != "":
		return buildRules(f, Rule{Token: `new \Illuminate\Validation\Rules\Enum(` + ctx.ClassRef(f.Class) + "::class)", Raw: true})
	case len(f.Values) > 0:
		return buildRules(f, Rule{Token: "in:" + strings.Join(f.Values, ",")})
	}
	return buildRules(f)
}

func buildRules(f schema.Field, base ...Rule) ([]Rule, error) {
	presence := "required"
	if f.Nullable() {
		presence = "nullable"
	}
	rules := append([]Rule{{Token: presence}}, base...)
	for _, token := range f.Validation {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, Errorf(ValidationRuleFailure, f.Name, "empty validation rule")
		}
		if strings.ContainsAny(token, "'\n") {
			return nil, Errorf(ValidationRuleFailure, f.Name, "validation rule %q contains a quote or line break", token)
		}
		rules = append(rules, Rule{Token: token})
	}
	return dedupeRules(rules), nil
}

func dedupeRules(rules []Rule) []Rule {
	seen := make(map[string]bool, len(rules))
	out := rules[:0]
	for _, r := range rules {
		if seen[r.Token] {
			continue
		}
		seen[r.Token] = true
		out = append(out, r)
	}
	return out
}
