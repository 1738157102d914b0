// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package generate

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// TransformerRegistry is the runtime class that applies field transformers in fromArray.
const TransformerRegistry = `\Dtogen\Runtime\FieldTransformerRegistry`

//go:embed dto.php.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("dto.php.tmpl").Funcs(template.FuncMap{
	"param":  param,
	"quote":  quote,
	"rules":  ruleList,
	"indent": indent,
}).ParseFS(tmplFS, "dto.php.tmpl"))

type renderData struct {
	*Artifact
	Transformed         bool
	TransformerRegistry string
}

// Render assembles the PHP source of an artifact. It performs no semantic checks.
func Render(a *Artifact) (string, error) {
	data := renderData{Artifact: a, TransformerRegistry: TransformerRegistry}
	for _, p := range a.Properties {
		if len(p.Transformers) > 0 {
			data.Transformed = true
			break
		}
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "dto.php.tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func param(p Property) string {
	s := "public readonly " + p.Type + " $" + p.Name
	if p.HasDefault() {
		s += " = " + p.Default
	}
	return s
}

func ruleList(s RuleSet) string {
	parts := make([]string, len(s.Rules))
	for i, r := range s.Rules {
		parts[i] = r.Source()
	}
	return strings.Join(parts, ", ")
}

func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
