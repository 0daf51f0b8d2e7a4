// Package size computes file and directory size annotations: actual on-disk
// size, an estimated deflate-compressed size, and recursive directory
// aggregates. Sizes are advisory UI decoration, so every failure degrades to
// a zero contribution instead of propagating.
package size

import (
	"compress/flate"
	"context"
	"io"
	"os"

	"github.com/dirscope/dirscope/internal/fs"
	"github.com/dirscope/dirscope/internal/pathutil"
)

// Estimator computes size annotations over a FileSystem.
type Estimator struct {
	fsys fs.FileSystem
}

// NewEstimator creates an Estimator backed by fsys.
func NewEstimator(fsys fs.FileSystem) *Estimator {
	return &Estimator{fsys: fsys}
}

// FileSize returns the stat-reported size of the file at path, or 0 when the
// path cannot be statted.
func (e *Estimator) FileSize(path string) int64 {
	return e.fsys.Stat(path).Size
}

// countingWriter discards everything written to it, keeping only the count.
type countingWriter struct {
	n int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

// CompressedSize estimates the size the file at path would occupy under
// deflate compression, by streaming its content through a compressor and
// summing the output length. Nothing is written anywhere. Unreadable or
// non-regular files yield 0.
func (e *Estimator) CompressedSize(path string) int64 {
	if !e.fsys.Stat(path).IsFile {
		return 0
	}
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	var counter countingWriter
	zw, err := flate.NewWriter(&counter, flate.DefaultCompression)
	if err != nil {
		return 0
	}
	if _, err := io.Copy(zw, f); err != nil {
		return 0
	}
	if err := zw.Close(); err != nil {
		return 0
	}
	return counter.n
}

// DirectorySize sums the sizes of all regular files under path, depth-first.
// Entries that fail to stat or list contribute 0, so a partially unreadable
// tree still reports the sum of its readable files. Symlinks are not
// followed: a link inside the tree would double count its target or loop.
// There is no caching; every call walks the subtree again.
//
// Cancellation is checked at each directory descent. A cancelled walk
// returns a Cancelled error rather than the partial sum, because a partial
// size would be silently wrong.
func (e *Estimator) DirectorySize(ctx context.Context, path string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, &fs.Error{Kind: fs.KindCancelled, Path: path, Err: err}
	}

	entries, err := e.fsys.ReadDir(path)
	if err != nil {
		return 0, nil
	}

	var total int64
	for _, entry := range entries {
		child := pathutil.Join(path, entry.Name)
		switch entry.Type {
		case fs.TypeDirectory:
			n, err := e.DirectorySize(ctx, child)
			if err != nil {
				return 0, err
			}
			total += n
		case fs.TypeFile:
			total += e.fsys.Stat(child).Size
		}
	}
	return total, nil
}
