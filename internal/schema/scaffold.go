// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"bytes"
	"strings"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"
)

// ClassSuffix is appended to generated DTO class names.
const ClassSuffix = "DTO"

// ClassName derives a DTO class name from an entity name, e.g. "blog_posts" -> "BlogPostDTO".
func ClassName(entity string) string {
	entity = strings.TrimSuffix(strings.TrimSpace(entity), ClassSuffix)
	return inflect.Camelize(inflect.Singularize(entity)) + ClassSuffix
}

// FileName derives the definition file name for a DTO class, e.g. "BlogPostDTO" -> "blog_post.yaml".
func FileName(class string) string {
	return inflect.Underscore(strings.TrimSuffix(class, ClassSuffix)) + ".yaml"
}

// TableName derives a table name for a DTO class, e.g. "BlogPostDTO" -> "blog_posts".
func TableName(class string) string {
	return inflect.Pluralize(inflect.Underscore(strings.TrimSuffix(class, ClassSuffix)))
}

// SkeletonOptions configures Skeleton.
type SkeletonOptions struct {
	Class     string
	Model     string
	Table     string
	Namespace string
}

// Skeleton renders a starter definition document for a new DTO.
func Skeleton(opts SkeletonOptions) ([]byte, error) {
	header := []*yaml.Node{
		str("dto"), str(opts.Class),
		str("model"), str(opts.Model),
		str("table"), str(opts.Table),
	}
	if opts.Namespace != "" {
		header = append(header, str("namespace"), str(opts.Namespace))
	}

	doc := mapping(
		str("header"), mapping(header...),
		str("fields"), mapping(
			str("id"), mapping(
				str("type"), str("integer"),
				str("required"), boolean(true),
			),
			str("name"), mapping(
				str("type"), str("string"),
				str("required"), boolean(true),
				str("validation"), sequence(str("max:255")),
			),
		),
		str("relations"), flowMapping(),
		str("options"), mapping(
			str("timestamps"), boolean(true),
		),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func boolean(v bool) *yaml.Node {
	s := "false"
	if v {
		s = "true"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}

func flowMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
}

func sequence(items ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: items}
}
