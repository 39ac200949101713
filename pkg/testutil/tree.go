package testutil

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/snipper/pkg/filesystem"
	"github.com/arthur-debert/snipper/pkg/types"
	"github.com/stretchr/testify/require"
)

// Lines joins lines with newlines and terminates the last one
func Lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

// MemoryTree creates an in-memory filesystem holding files below root.
// Keys are slash separated paths relative to root.
func MemoryTree(t *testing.T, root string, files map[string]string) types.FS {
	t.Helper()
	fs := filesystem.NewMemoryFS()
	require.NoError(t, fs.MkdirAll(root, 0755))
	for rel, content := range files {
		p := path.Join(root, rel)
		require.NoError(t, fs.MkdirAll(path.Dir(p), 0755))
		require.NoError(t, fs.WriteFile(p, []byte(content), 0644))
	}
	return fs
}

// TempTree writes files into a new temporary directory and returns it
func TempTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

// ReadFile returns the content of path, failing the test on error
func ReadFile(t *testing.T, fs types.FS, path string) string {
	t.Helper()
	content, err := fs.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}
