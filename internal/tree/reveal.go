package tree

import (
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/dirscope/dirscope/internal/fs"
	"github.com/dirscope/dirscope/internal/util"
)

// Reveal opens the node's containing folder in the system file explorer.
// Best-effort: failures are logged, never returned.
func (m *Materializer) Reveal(node Node) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "explorer"
		args = []string{"/select,", node.Path}
	case "darwin":
		cmd = "open"
		args = []string{"-R", node.Path}
	default: // linux, etc.
		dir := node.Path
		if node.Type != fs.TypeDirectory {
			dir = filepath.Dir(node.Path)
		}
		cmd = "xdg-open"
		args = []string{dir}
	}

	if err := exec.Command(cmd, args...).Start(); err != nil {
		logger := util.Logger("tree")
		logger.Warn().Str("path", node.Path).Err(err).Msg("reveal failed")
	}
}
