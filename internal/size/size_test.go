package size

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dirscope/dirscope/internal/fs"
)

func newEstimator() *Estimator {
	return NewEstimator(fs.NewLocalFS())
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xAB}, 100), 0o644))

	assert.Equal(t, int64(100), newEstimator().FileSize(path))
}

func TestFileSize_Missing(t *testing.T) {
	assert.Equal(t, int64(0), newEstimator().FileSize(filepath.Join(t.TempDir(), "gone")))
}

func TestCompressedSize_RepetitiveContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zeros.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 10*1024), 0o644))

	e := newEstimator()
	compressed := e.CompressedSize(path)

	assert.Greater(t, compressed, int64(0))
	assert.Less(t, compressed, e.FileSize(path), "all-identical bytes must compress smaller")
}

func TestCompressedSize_Missing(t *testing.T) {
	assert.Equal(t, int64(0), newEstimator().CompressedSize(filepath.Join(t.TempDir(), "gone")))
}

func TestCompressedSize_Directory(t *testing.T) {
	assert.Equal(t, int64(0), newEstimator().CompressedSize(t.TempDir()))
}

func TestDirectorySize_Empty(t *testing.T) {
	total, err := newEstimator().DirectorySize(context.Background(), t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestDirectorySize_SingleFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.bin"), make([]byte, 100), 0o644))

	total, err := newEstimator().DirectorySize(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, int64(100), total)
}

func TestDirectorySize_Nested(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b"), make([]byte, 32), 0o644))

	total, err := newEstimator().DirectorySize(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

func TestDirectorySize_DanglingSymlinkContributesZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0o644))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dangling")))

	total, err := newEstimator().DirectorySize(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, int64(100), total, "an unstatable child must not abort the sum")
}

func TestDirectorySize_SymlinksNotFollowed(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "big"), make([]byte, 4096), 0o644))
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 7), 0o644))

	total, err := newEstimator().DirectorySize(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, int64(7), total, "symlinked subtrees must not be counted")
}

func TestDirectorySize_Missing(t *testing.T) {
	total, err := newEstimator().DirectorySize(context.Background(), filepath.Join(t.TempDir(), "gone"))

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestDirectorySize_Cancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), make([]byte, 10), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled aggregation must not report a partial sum.
	_, err := newEstimator().DirectorySize(ctx, dir)
	require.Error(t, err)
	assert.Equal(t, fs.KindCancelled, fs.KindOf(err))
}
