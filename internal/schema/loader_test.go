// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"defs/user.yaml":         {Data: []byte("header:\n  dto: UserDTO\nfields:\n  id: integer\n")},
		"defs/admin/role.yml":    {Data: []byte("header:\n  dto: RoleDTO\n")},
		"defs/order.json":        {Data: []byte(`{"header": {"dto": "OrderDTO"}}`)},
		"defs/README.md":         {Data: []byte("# definitions")},
		"defs/broken.yaml":       {Data: []byte("fields: [a]")},
		"other/ignored.yaml":     {Data: []byte("header:\n  dto: X\n")},
		"defs/notes/archive.txt": {Data: []byte("old")},
	}
}

func TestLoader_List(t *testing.T) {
	l := NewLoader(testFS())

	files, err := l.List("defs")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"defs/admin/role.yml",
		"defs/broken.yaml",
		"defs/order.json",
		"defs/user.yaml",
	}, files)
}

func TestLoader_ListMissingDir(t *testing.T) {
	l := NewLoader(testFS())

	_, err := l.List("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadFile(t *testing.T) {
	l := NewLoader(testFS())

	def, err := l.LoadFile("defs/user.yaml")
	require.NoError(t, err)
	assert.Equal(t, "defs/user.yaml", def.Source)
	assert.Equal(t, "UserDTO", def.Header.DTO)
	assert.Equal(t, []string{"id"}, def.FieldNames())

	def, err = l.LoadFile("defs/order.json")
	require.NoError(t, err)
	assert.Equal(t, "OrderDTO", def.Header.DTO)
}

func TestLoader_LoadFileErrors(t *testing.T) {
	l := NewLoader(testFS())

	_, err := l.LoadFile("defs/README.md")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = l.LoadFile("defs/nope.yaml")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = l.LoadFile("defs/broken.yaml")
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	assert.Contains(t, err.Error(), "defs/broken.yaml")
}

func TestIsDefinitionFile(t *testing.T) {
	assert.True(t, IsDefinitionFile("a.yaml"))
	assert.True(t, IsDefinitionFile("a.YML"))
	assert.True(t, IsDefinitionFile("dir/a.json"))
	assert.False(t, IsDefinitionFile("a.php"))
	assert.False(t, IsDefinitionFile("yaml"))
}
