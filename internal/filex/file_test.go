package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dkozyrev/jobtrack/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	f, err := LoadInputFile(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.pdf", f.DisplayName)
	assert.Equal(t, "application/pdf", f.ContentKind)
	assert.Equal(t, []byte("%PDF-1.4"), f.Payload)
}

func TestLoadInputFile_UnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.xyzunknown")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	f, err := LoadInputFile(path)
	require.NoError(t, err)
	assert.Equal(t, models.ContentKindDefault, f.ContentKind)
}

func TestLoadInputFile_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	f, err := LoadInputFile(path)
	require.NoError(t, err)
	assert.Empty(t, f.Payload)
}

func TestLoadInputFile_Missing(t *testing.T) {
	_, err := LoadInputFile(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
}

func TestEnsureSubDir(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(orig) })

	require.NoError(t, os.Chdir(t.TempDir()))

	dir, err := EnsureSubDir("export")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	again, err := EnsureSubDir("export")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}
