package fs

import (
	iofs "io/fs"
	"os"

	"github.com/dirscope/dirscope/internal/pathutil"
)

// LocalFS implements FileSystem against the local disk. Paths are absolute.
type LocalFS struct{}

// NewLocalFS creates a LocalFS.
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func typeOf(mode iofs.FileMode) EntryType {
	switch {
	case mode&iofs.ModeSymlink != 0:
		return TypeSymbolicLink
	case mode.IsDir():
		return TypeDirectory
	case mode.IsRegular():
		return TypeFile
	default:
		return TypeUnknown
	}
}

// Stat returns a metadata snapshot for path. A missing or unstatable path
// yields the zero descriptor, never an error: entries can vanish between a
// listing and the stat, and the caller must stay responsive. Symlinks are
// reported as such, not followed.
func (l *LocalFS) Stat(path string) StatDescriptor {
	info, err := os.Lstat(path)
	if err != nil {
		return StatDescriptor{}
	}
	t := typeOf(info.Mode())
	mtime := info.ModTime().UnixMilli()
	return StatDescriptor{
		Type:           t,
		IsFile:         t == TypeFile,
		IsDirectory:    t == TypeDirectory,
		IsSymbolicLink: t == TypeSymbolicLink,
		Size:           info.Size(),
		// Portable creation time is not available; mtime stands in.
		CreatedAt:  mtime,
		ModifiedAt: mtime,
	}
}

// ReadDir lists the immediate children of path. It fails only when the
// directory itself cannot be listed; a child whose metadata cannot be read
// degrades to TypeUnknown instead of aborting the listing. Names are
// normalized for platform-consistent comparison.
func (l *LocalFS) ReadDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, wrapPath(path, err)
	}
	result := make([]DirEntry, len(entries))
	for i, e := range entries {
		t := TypeUnknown
		if info, err := e.Info(); err == nil {
			t = typeOf(info.Mode())
		}
		result[i] = DirEntry{
			Name: pathutil.Normalize(e.Name()),
			Type: t,
		}
	}
	return result, nil
}

// ReadFile reads the contents of the file at path, with a classified error
// on failure.
func (l *LocalFS) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapPath(path, err)
	}
	return data, nil
}

// The write family is out of scope; no working implementation exists.

func (l *LocalFS) CreateDirectory(path string) error { return unsupported(path) }

func (l *LocalFS) WriteFile(path string, data []byte) error { return unsupported(path) }

func (l *LocalFS) Delete(path string) error { return unsupported(path) }

func (l *LocalFS) Rename(oldPath, newPath string) error { return unsupported(oldPath) }

func (l *LocalFS) Copy(srcPath, dstPath string) error { return unsupported(srcPath) }

func unsupported(path string) error {
	return &Error{Kind: KindUnknown, Path: path, Err: ErrUnsupported}
}
