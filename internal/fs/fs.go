// Package fs provides a minimal virtual filesystem over a real on-disk tree:
// stat, list, and read, with a classified error taxonomy. Write operations
// exist only as stubs.
package fs

// EntryType tags a filesystem entry.
type EntryType int

// Entry types.
const (
	TypeUnknown EntryType = iota
	TypeFile
	TypeDirectory
	TypeSymbolicLink
)

func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymbolicLink:
		return "symlink"
	default:
		return "unknown"
	}
}

// StatDescriptor is an immutable metadata snapshot taken at one instant.
// At most one of the Is* flags is true; a zero descriptor means the path was
// missing or unstatable. Timestamps are epoch milliseconds.
type StatDescriptor struct {
	Type           EntryType `json:"type"`
	IsFile         bool      `json:"isFile"`
	IsDirectory    bool      `json:"isDirectory"`
	IsSymbolicLink bool      `json:"isSymbolicLink"`
	Size           int64     `json:"size"`
	CreatedAt      int64     `json:"createdAt"`
	ModifiedAt     int64     `json:"modifiedAt"`
}

// DirEntry is a single child of a listed directory.
type DirEntry struct {
	Name string    `json:"name"`
	Type EntryType `json:"type"`
}

// FileSystem abstracts the operations the tree engine needs over a backing
// store. Only the read family has a working implementation; the write family
// returns ErrUnsupported.
type FileSystem interface {
	Stat(path string) StatDescriptor
	ReadDir(path string) ([]DirEntry, error)
	ReadFile(path string) ([]byte, error)

	CreateDirectory(path string) error
	WriteFile(path string, data []byte) error
	Delete(path string) error
	Rename(oldPath, newPath string) error
	Copy(srcPath, dstPath string) error
}
