package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestStat_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, []byte("hello"))

	l := NewLocalFS()
	desc := l.Stat(path)

	assert.Equal(t, TypeFile, desc.Type)
	assert.True(t, desc.IsFile)
	assert.False(t, desc.IsDirectory)
	assert.False(t, desc.IsSymbolicLink)
	assert.Equal(t, int64(5), desc.Size)
	assert.NotZero(t, desc.ModifiedAt)
}

func TestStat_Directory(t *testing.T) {
	dir := t.TempDir()

	desc := NewLocalFS().Stat(dir)

	assert.Equal(t, TypeDirectory, desc.Type)
	assert.True(t, desc.IsDirectory)
	assert.False(t, desc.IsFile)
}

func TestStat_Symlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	writeFile(t, target, []byte("x"))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	desc := NewLocalFS().Stat(link)

	assert.Equal(t, TypeSymbolicLink, desc.Type)
	assert.True(t, desc.IsSymbolicLink)
	assert.False(t, desc.IsFile)
}

func TestStat_Missing(t *testing.T) {
	desc := NewLocalFS().Stat(filepath.Join(t.TempDir(), "nope"))

	// A vanished path degrades to the zero descriptor, never an error.
	assert.Equal(t, StatDescriptor{}, desc)
}

func TestReadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), []byte("b"))
	writeFile(t, filepath.Join(dir, "a.txt"), []byte("a"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	entries, err := NewLocalFS().ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	byName := map[string]EntryType{}
	for _, e := range entries {
		_, dup := byName[e.Name]
		assert.False(t, dup, "duplicate name %q", e.Name)
		byName[e.Name] = e.Type
	}
	assert.Equal(t, TypeFile, byName["a.txt"])
	assert.Equal(t, TypeFile, byName["b.txt"])
	assert.Equal(t, TypeDirectory, byName["sub"])
}

func TestReadDir_Missing(t *testing.T) {
	_, err := NewLocalFS().ReadDir(filepath.Join(t.TempDir(), "gone"))

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, []byte("content"))

	data, err := NewLocalFS().ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), data)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := NewLocalFS().ReadFile(filepath.Join(t.TempDir(), "gone"))

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestReadFile_Directory(t *testing.T) {
	_, err := NewLocalFS().ReadFile(t.TempDir())

	require.Error(t, err)
	assert.Equal(t, KindIsADirectory, KindOf(err))
}

func TestWriteFamilyUnsupported(t *testing.T) {
	l := NewLocalFS()
	dir := t.TempDir()

	assert.ErrorIs(t, l.CreateDirectory(filepath.Join(dir, "d")), ErrUnsupported)
	assert.ErrorIs(t, l.WriteFile(filepath.Join(dir, "f"), nil), ErrUnsupported)
	assert.ErrorIs(t, l.Delete(dir), ErrUnsupported)
	assert.ErrorIs(t, l.Rename(dir, dir+"2"), ErrUnsupported)
	assert.ErrorIs(t, l.Copy(dir, dir+"2"), ErrUnsupported)
}
