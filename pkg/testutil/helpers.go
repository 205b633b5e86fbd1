package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MustWriteFile writes a file, creating parent directories first.
func MustWriteFile(t *testing.T, fs *MemoryFS, path, content string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, fs.WriteFile(path, []byte(content), 0o644))
}

// MustSymlink creates a symlink, creating parent directories first.
func MustSymlink(t *testing.T, fs *MemoryFS, dest, link string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, fs.Symlink(dest, link))
}

// MustMkdirAll creates a directory tree.
func MustMkdirAll(t *testing.T, fs *MemoryFS, path string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(path, 0o755))
}
