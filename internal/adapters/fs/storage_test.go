package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cwaimg/internal/adapters/fs"
	"go.trai.ch/cwaimg/internal/core/domain"
	"go.trai.ch/cwaimg/internal/core/ports"
)

var _ ports.Storage = (*fs.Storage)(nil)

func TestStorage_Save(t *testing.T) {
	dir := t.TempDir()
	s := fs.NewStorage()

	path, err := s.Save(dir, "a.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file may remain")
}

func TestStorage_Save_Overwrite(t *testing.T) {
	dir := t.TempDir()
	s := fs.NewStorage()

	_, err := s.Save(dir, "a.png", []byte("old"))
	require.NoError(t, err)
	_, err = s.Save(dir, "a.png", []byte("new"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestStorage_Save_MissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	_, err := fs.NewStorage().Save(dir, "a.png", []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, domain.ErrLocalWriteFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, filepath.Join(dir, "a.png"))
}

func TestStorage_Save_FinalNameIsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "a.png"), 0o750))

	_, err := fs.NewStorage().Save(dir, "a.png", []byte("x"))
	require.ErrorIs(t, err, domain.ErrLocalWriteFailed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the temporary file must be removed")
	assert.True(t, entries[0].IsDir())
}

func TestStorage_Save_InvalidName(t *testing.T) {
	for _, name := range []string{"", ".", "..", "../escape.png", "sub/a.png"} {
		t.Run(name, func(t *testing.T) {
			_, err := fs.NewStorage().Save(t.TempDir(), name, []byte("x"))
			assert.ErrorIs(t, err, domain.ErrLocalWriteFailed)
		})
	}
}

func TestStorage_ListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.jpg", ".a.png.123.part", ".hidden"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o750))

	set, err := fs.NewStorage().ListFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, domain.NewLocalFileSet("a.png", "b.jpg"), set)
	assert.NoFileExists(t, filepath.Join(dir, ".a.png.123.part"))
	assert.FileExists(t, filepath.Join(dir, ".hidden"))
}

func TestStorage_ListFiles_MissingDir(t *testing.T) {
	set, err := fs.NewStorage().ListFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestStorage_ListFiles_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := fs.NewStorage().ListFiles(file)
	require.ErrorIs(t, err, domain.ErrLocalDirReadFailed)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestStorage_EnsureDir(t *testing.T) {
	root := t.TempDir()
	s := fs.NewStorage()

	dir := filepath.Join(root, "images", "satellite")
	require.NoError(t, s.EnsureDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, s.EnsureDir(dir), "existing directory is fine")

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	err := s.EnsureDir(filepath.Join(file, "sub"))
	require.ErrorIs(t, err, domain.ErrLocalDirCreateFailed)
	assert.ErrorIs(t, err, domain.ErrIO)
}
