// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ClientIDKey, "  abc123  \n")
				writeFile(t, dir, ClientSecretKey, "xyz789\n")
				return dir
			},
			want: map[string]string{
				ClientIDKey:     "abc123",
				ClientSecretKey: "xyz789",
			},
		},
		{
			name: "returns empty map for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty and whitespace-only files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ClientIDKey, "id")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: map[string]string{ClientIDKey: "id"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, ClientSecretKey, "real")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: map[string]string{ClientSecretKey: "real"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentials(t *testing.T) {
	loaded := map[string]string{ClientIDKey: "file-id", ClientSecretKey: "file-secret"}

	id, secret, err := Credentials(loaded, "", "")
	require.NoError(t, err)
	assert.Equal(t, "file-id", id)
	assert.Equal(t, "file-secret", secret)

	id, secret, err = Credentials(loaded, "env-id", "")
	require.NoError(t, err)
	assert.Equal(t, "env-id", id)
	assert.Equal(t, "file-secret", secret)

	_, _, err = Credentials(map[string]string{}, "only-id", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ClientSecretKey)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
