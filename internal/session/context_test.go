// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dacolabs/dtogen/internal/config"
)

func writeProject(t *testing.T, cfg string, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	if cfg != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(cfg), 0o600))
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

const validConfig = "version: 1\ndefinitions: defs\noutput: app/DTO\nnamespace: App\\DTO\n"

func noEnv(string) string { return "" }

func TestLoadDir(t *testing.T) {
	tests := []struct {
		name    string
		cfg     string
		files   map[string]string
		wantErr error
	}{
		{name: "not initialized", wantErr: ErrNotInitialized},
		{name: "malformed config", cfg: "version: [", wantErr: ErrInvalidConfig},
		{name: "invalid config", cfg: "version: 7\ndefinitions: defs\noutput: out\n", wantErr: ErrInvalidConfig},
		{name: "definitions missing", cfg: validConfig, wantErr: ErrDefinitionsNotFound},
		{name: "definitions outside", cfg: "version: 1\ndefinitions: ../defs\noutput: out\n", wantErr: ErrInvalidConfig},
		{name: "valid", cfg: validConfig, files: map[string]string{"defs/user.yaml": "header:\n  dto: UserDTO\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, tt.cfg, tt.files)

			s, err := LoadDir(dir, noEnv)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "defs", s.Definitions)
			assert.Equal(t, filepath.Join(s.Root, "app", "DTO", "UserDTO.php"), s.Paths.OutputPath("UserDTO", `App\DTO`))

			files, err := s.Loader.List(s.Definitions)
			require.NoError(t, err)
			assert.Equal(t, []string{"defs/user.yaml"}, files)
		})
	}
}

func TestLoadDir_Env(t *testing.T) {
	dir := writeProject(t, validConfig, map[string]string{
		"defs/.keep": "",
		".env":       "DTOGEN_NAMESPACE=Acme.Data\nDTOGEN_OUTPUT=src/Data\n",
	})

	s, err := LoadDir(dir, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "Acme.Data", s.Config.Namespace)
	assert.Equal(t, "src/Data", s.Config.Output)

	s, err = LoadDir(dir, func(k string) string {
		if k == config.EnvNamespace {
			return "Shell.Data"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, "Shell.Data", s.Config.Namespace, "process environment wins over .env")
	assert.Equal(t, "src/Data", s.Config.Output)
}

func TestPreRunLoad(t *testing.T) {
	dir := writeProject(t, validConfig, map[string]string{"defs/user.yaml": "header:\n  dto: UserDTO\n"})
	t.Chdir(dir)

	cmd := &cobra.Command{}
	cmd.SetContext(WithEnv(context.Background(), noEnv))

	assert.Nil(t, FromCommand(cmd))
	_, err := RequireFromCommand(cmd)
	assert.Error(t, err)

	require.NoError(t, PreRunLoad(cmd, nil))
	s, err := RequireFromCommand(cmd)
	require.NoError(t, err)
	assert.Equal(t, "defs", s.Definitions)
	assert.NotNil(t, s.Generator)
}

func TestFrom_NoContextStored(t *testing.T) {
	assert.Nil(t, From(context.Background()))
}

func TestContext_Rel(t *testing.T) {
	s := &Context{Root: filepath.FromSlash("/srv/app")}

	rel, err := s.Rel(filepath.FromSlash("/srv/app/defs/user.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "defs/user.yaml", rel)

	rel, err = s.Rel("defs/./admin/../user.yaml")
	require.NoError(t, err)
	assert.Equal(t, "defs/user.yaml", rel)

	_, err = s.Rel(filepath.FromSlash("/etc/passwd"))
	assert.Error(t, err)
}

func TestLoadDir_NamespaceFromOutput(t *testing.T) {
	dir := writeProject(t, "version: 1\ndefinitions: defs\noutput: app/Data/DTOs\n", map[string]string{"defs/.keep": ""})

	s, err := LoadDir(dir, noEnv)
	require.NoError(t, err)
	assert.Equal(t, `App\Data\DTOs`, s.Config.Namespace)
	assert.Equal(t, filepath.Join(s.Root, "app", "Data", "DTOs", "UserDTO.php"), s.Paths.OutputPath("UserDTO", `App\Data\DTOs`))
}
