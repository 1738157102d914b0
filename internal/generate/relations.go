// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"github.com/dacolabs/dtogen/internal/schema"
)

// DefaultRelationRegistry returns the relation registry with every built-in emitter.
func DefaultRelationRegistry() *RelationRegistry {
	return NewRelationRegistry(
		singleRelation{kindSet[schema.RelationKind]{schema.HasOne, schema.BelongsTo}},
		manyRelation{kindSet[schema.RelationKind]{schema.HasMany, schema.BelongsToMany}},
	)
}

// singleRelation emits a nullable property holding one related DTO.
type singleRelation struct{ kindSet[schema.RelationKind] }

func (singleRelation) Generate(name string, rel schema.Relation, ctx *Context) (string, error) {
	if rel.Target == "" {
		return "", Errorf(RelationGenerationFailure, name, "relation needs a target")
	}
	return "public ?" + ctx.ClassRef(rel.Target) + " $" + name + " = null;", nil
}

// manyRelation emits an array property holding related DTOs.
type manyRelation struct{ kindSet[schema.RelationKind] }

func (manyRelation) Generate(name string, rel schema.Relation, ctx *Context) (string, error) {
	if rel.Target == "" {
		return "", Errorf(RelationGenerationFailure, name, "relation needs a target")
	}
	return "/** @var " + ctx.ClassRef(rel.Target) + "[] */\npublic array $" + name + " = [];", nil
}
