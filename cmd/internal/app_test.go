// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/dtogen/internal/session"
)

func TestRun_NotInitialized(t *testing.T) {
	t.Chdir(t.TempDir())

	err := Run(context.Background(), func(string) string { return "" }, "list")
	assert.ErrorIs(t, err, session.ErrNotInitialized)
}

func TestRun_EnvOverridesOutput(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("dtogen.yaml", []byte("version: 1\ndefinitions: defs\noutput: app/DTO\n"), 0o600))
	require.NoError(t, os.MkdirAll("defs", 0o750))
	require.NoError(t, os.WriteFile(filepath.Join("defs", "tag.yaml"), []byte("header:\n  dto: TagDTO\nfields:\n  label: string\n"), 0o600))

	env := map[string]string{"DTOGEN_OUTPUT": "src/Data", "DTOGEN_NAMESPACE": "Acme.Data"}
	err := Run(context.Background(), func(k string) string { return env[k] }, "generate", "--all")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "src", "Data", "TagDTO.php"))
}
