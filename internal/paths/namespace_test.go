// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, `App\DTO\Admin`, Canonical("App.DTO.Admin"))
	assert.Equal(t, `App\DTO`, Canonical(` App\DTO `))
}

func TestIsValidNamespace(t *testing.T) {
	tests := []struct {
		ns   string
		want bool
	}{
		{`App`, true},
		{`App\DTO\Admin`, true},
		{`_Internal\V2`, true},
		{``, false},
		{`App\\DTO`, false},
		{`\App\DTO`, false},
		{`App\DTO\`, false},
		{`App\2DTO`, false},
		{`App\DTO-Admin`, false},
		{`App\DTO Admin`, false},
	}

	for _, tt := range tests {
		t.Run(tt.ns, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidNamespace(tt.ns))
		})
	}
}

func TestIsSubNamespaceOf(t *testing.T) {
	assert.True(t, IsSubNamespaceOf(`App\DTO\Admin`, `App\DTO`))
	assert.True(t, IsSubNamespaceOf(` \App\DTO\Admin\ `, `App\DTO\`))
	assert.False(t, IsSubNamespaceOf(`App\DTO`, `App\DTO`), "never its own sub-namespace")
	assert.False(t, IsSubNamespaceOf(`App\DTOs`, `App\DTO`))
	assert.False(t, IsSubNamespaceOf(`App`, `App\DTO`))
	assert.False(t, IsSubNamespaceOf(`App\DTO`, ``))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, `App\DTO\Admin`, Join(`App\DTO`, "", `\Admin\`))
	assert.Equal(t, "", Join())
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("created_at"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("first-name"))
	assert.False(t, IsIdentifier(""))
}
