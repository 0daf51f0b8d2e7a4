// Package pathutil normalizes filesystem names so that comparisons and joins
// behave the same on every platform.
package pathutil

import (
	"path/filepath"
	"runtime"

	"golang.org/x/text/unicode/norm"
)

// Normalize converts a filename to its canonical composed Unicode form on
// platforms whose filesystem reports decomposed names (macOS). Elsewhere it
// is the identity. Every name coming out of a directory listing or a watcher
// event goes through here before comparison or joining.
func Normalize(name string) string {
	if runtime.GOOS != "darwin" {
		return name
	}
	return norm.NFC.String(name)
}

// Join joins a base path with a child name. It does not resolve symlinks or
// ".." segments; the OS does that at access time.
func Join(base, child string) string {
	return filepath.Join(base, child)
}
