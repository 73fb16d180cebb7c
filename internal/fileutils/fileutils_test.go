package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/camt-export/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.xml")
	require.NoError(t, os.WriteFile(testFile, []byte("x"), 0o600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "missing.xml")))
	// A directory is not a file.
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")

	require.NoError(t, fileutils.EnsureDirectoryExists(nested))
	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, fileutils.EnsureDirectoryExists(nested))
}

func TestCreateFileCreatesParents(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out", "result.csv")

	f, err := fileutils.CreateFile(target)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.True(t, fileutils.FileExists(target))
}

func TestListFilesWithExtension(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "b.xml"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "a.XML"), nil, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "c.csv"), nil, 0o600))
	// Files in subdirectories are not picked up.
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sub", "d.xml"), nil, 0o600))

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".xml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.XML"),
		filepath.Join(tmpDir, "b.xml"),
	}, files)
}

func TestListFilesWithExtensionMissingDir(t *testing.T) {
	_, err := fileutils.ListFilesWithExtension(filepath.Join(t.TempDir(), "nope"), ".xml")
	assert.Error(t, err)
}
